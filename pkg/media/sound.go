package media

// SoundSource mirrors the client mixer channels a sound can play on.
type SoundSource string

const (
	SoundSourceMaster  SoundSource = "master"
	SoundSourceMusic   SoundSource = "music"
	SoundSourceRecord  SoundSource = "record"
	SoundSourceWeather SoundSource = "weather"
	SoundSourceBlock   SoundSource = "block"
	SoundSourceHostile SoundSource = "hostile"
	SoundSourceNeutral SoundSource = "neutral"
	SoundSourcePlayer  SoundSource = "player"
	SoundSourceAmbient SoundSource = "ambient"
	SoundSourceVoice   SoundSource = "voice"
)

// Sound identifies a named sound event.
type Sound struct {
	Name   string
	Source SoundSource
	Volume float32
	Pitch  float32
}

// NewSound builds a sound at full volume and neutral pitch on the master channel.
func NewSound(name string) Sound {
	return Sound{
		Name:   name,
		Source: SoundSourceMaster,
		Volume: 1,
		Pitch:  1,
	}
}

// SoundStop filters which playing sounds to stop. Zero fields match everything.
type SoundStop struct {
	Name   string
	Source SoundSource
}

// StopAll stops every sound regardless of name or source.
func StopAll() SoundStop {
	return SoundStop{}
}

// StopNamed stops sounds with the given name on any source.
func StopNamed(name string) SoundStop {
	return SoundStop{Name: name}
}
