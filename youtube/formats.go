package youtube

// Format selects what the remote service extracts from a source.
type Format string

const (
	// FormatVideo requests a video download
	FormatVideo Format = "video"
	// FormatAudio requests an audio-only extraction
	FormatAudio Format = "audio"
)

// Valid reports whether f is a recognized format.
func (f Format) Valid() bool {
	return f == FormatVideo || f == FormatAudio
}

// String returns the wire representation of the format.
func (f Format) String() string {
	return string(f)
}

// QualityOption is a selectable quality with its display label.
type QualityOption struct {
	// Value is the wire value sent to the service (e.g. "720p", "256kbps")
	Value string
	// Label is the human-readable description
	Label string
}

var videoQualities = []QualityOption{
	{Value: "3gp", Label: "3GP (Mobile)"},
	{Value: "360p", Label: "360p"},
	{Value: "480p", Label: "480p (SD)"},
	{Value: "720p", Label: "720p (Recommended)"},
	{Value: "1080p", Label: "1080p (Full HD)"},
}

var audioQualities = []QualityOption{
	{Value: "128kbps", Label: "128 kbps"},
	{Value: "192kbps", Label: "192 kbps"},
	{Value: "256kbps", Label: "256 kbps (Recommended)"},
	{Value: "320kbps", Label: "320 kbps (High Quality)"},
}

const (
	defaultVideoIndex = 3 // 720p
	defaultAudioIndex = 2 // 256kbps
)

// QualityOptions returns the ordered quality options for a format and
// the index of the default selection. Unknown formats get an empty
// list and index -1.
func QualityOptions(f Format) ([]QualityOption, int) {
	switch f {
	case FormatVideo:
		return append([]QualityOption(nil), videoQualities...), defaultVideoIndex
	case FormatAudio:
		return append([]QualityOption(nil), audioQualities...), defaultAudioIndex
	default:
		return nil, -1
	}
}

// DefaultQuality returns the recommended quality for a format:
// 720p for video, 256kbps for audio.
func DefaultQuality(f Format) string {
	opts, idx := QualityOptions(f)
	if idx < 0 {
		return ""
	}
	return opts[idx].Value
}

// IsValidQuality reports whether quality is one of the catalog values
// for the given format.
func IsValidQuality(f Format, quality string) bool {
	opts, _ := QualityOptions(f)
	for _, o := range opts {
		if o.Value == quality {
			return true
		}
	}
	return false
}

// Selection tracks a user's format/quality choice. Switching the
// format always resets the quality to the new format's default; a
// quality from the other format never carries over.
type Selection struct {
	Format  Format
	Quality string
}

// NewSelection returns a selection initialized to the format's default
// quality.
func NewSelection(f Format) Selection {
	return Selection{Format: f, Quality: DefaultQuality(f)}
}

// SetFormat switches the format and resets the quality to the new
// format's default.
func (s *Selection) SetFormat(f Format) {
	s.Format = f
	s.Quality = DefaultQuality(f)
}

// SetQuality sets the quality if it is valid for the current format.
// Invalid values are ignored and the current quality kept.
func (s *Selection) SetQuality(quality string) bool {
	if !IsValidQuality(s.Format, quality) {
		return false
	}
	s.Quality = quality
	return true
}
