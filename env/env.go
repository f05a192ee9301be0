package env

type Args struct {
	Test    *bool
	Verbose *bool
	Levels  *bool
	SoundOn *bool
}
