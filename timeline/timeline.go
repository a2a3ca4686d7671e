// Package timeline converts the section list into an xmeml (Final Cut Pro 7
// XML) document that DaVinci Resolve and Premiere can import as a marker
// timeline.
package timeline

import (
	"bytes"
	"encoding/xml"
	"io"
	"slices"
	"strconv"

	"github.com/tourstudio/tourstudio/internal/timeutil"
	"github.com/tourstudio/tourstudio/timer"
)

const (
	// FileName is the name the exported document is saved under.
	FileName = "audio_tour_timeline.xml"
	// MIMEType of the exported document.
	MIMEType = "application/xml"

	sequenceName = "Audio Tour Timeline"
	zeroTimecode = "00:00:00:00"
	xmemlVersion = "4"
	ntscOff      = "FALSE"
	indent       = "  "
)

// FrameRate is a whole-frame timebase used only at export time.
type FrameRate int

// FrameRates lists the supported timebases.
var FrameRates = []FrameRate{24, 25, 30, 60}

// DefaultFrameRate is used when nothing else is configured.
const DefaultFrameRate FrameRate = 30

// ParseFrameRate validates fps.
func ParseFrameRate(fps int) (FrameRate, error) {
	r := FrameRate(fps)
	if !slices.Contains(FrameRates, r) {
		return 0, ErrUnsupportedFrameRate.Fmt(fps)
	}

	return r, nil
}

func (r FrameRate) String() string {
	return strconv.Itoa(int(r)) + " fps"
}

type Document struct {
	XMLName  xml.Name `xml:"xmeml"`
	Version  string   `xml:"version,attr"`
	Sequence Sequence `xml:"sequence"`
}

type Sequence struct {
	Name     string   `xml:"name"`
	Duration int64    `xml:"duration"`
	Rate     Rate     `xml:"rate"`
	Timecode Timecode `xml:"timecode"`
	Media    Media    `xml:"media"`
}

type Rate struct {
	Timebase int    `xml:"timebase"`
	NTSC     string `xml:"ntsc"`
}

type Timecode struct {
	Rate   Rate   `xml:"rate"`
	String string `xml:"string"`
	Frame  int64  `xml:"frame"`
}

type Media struct {
	Video Video `xml:"video"`
}

type Video struct {
	Track Track `xml:"track"`
}

type Track struct {
	ClipItems []ClipItem `xml:"clipitem"`
}

// ClipItem places one section on the track. In and Out are clip-relative,
// Start and End are timeline-absolute.
type ClipItem struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name"`
	Duration int64  `xml:"duration"`
	Rate     Rate   `xml:"rate"`
	In       int64  `xml:"in"`
	Out      int64  `xml:"out"`
	Start    int64  `xml:"start"`
	End      int64  `xml:"end"`
	Marker   Marker `xml:"marker"`
}

type Marker struct {
	Name    string `xml:"name"`
	Comment string `xml:"comment"`
	In      int64  `xml:"in"`
	Out     int64  `xml:"out"`
}

// Validate checks that every section carries consistent timing.
func Validate(sections []timer.Section) error {
	for i, s := range sections {
		if s.StartTime < 0 || s.EndTime < s.StartTime ||
			s.Duration != s.EndTime-s.StartTime {
			return ErrMalformedSection.Fmt(
				i+1,
				s.StartTime,
				s.EndTime,
				s.Duration,
			)
		}
	}

	return nil
}

// Build converts the sections into an xmeml document. Every timestamp is
// converted with the same truncating frame conversion.
func Build(sections []timer.Section, fps FrameRate) (*Document, error) {
	if _, err := ParseFrameRate(int(fps)); err != nil {
		return nil, err
	}

	if err := Validate(sections); err != nil {
		return nil, err
	}

	rate := Rate{
		Timebase: int(fps),
		NTSC:     ntscOff,
	}

	frames := func(s timer.Section) (dur, start, end int64) {
		return timeutil.Frames(s.Duration, int(fps)),
			timeutil.Frames(s.StartTime, int(fps)),
			timeutil.Frames(s.EndTime, int(fps))
	}

	var seqDuration int64
	if len(sections) > 0 {
		seqDuration = timeutil.Frames(sections[len(sections)-1].EndTime, int(fps))
	}

	doc := &Document{
		Version: xmemlVersion,
		Sequence: Sequence{
			Name:     sequenceName,
			Duration: seqDuration,
			Rate:     rate,
			Timecode: Timecode{
				Rate:   rate,
				String: zeroTimecode,
				Frame:  0,
			},
		},
	}

	items := make([]ClipItem, 0, len(sections))

	for i, s := range sections {
		dur, start, end := frames(s)

		items = append(items, ClipItem{
			ID:       "clipitem-" + strconv.Itoa(i+1),
			Name:     s.Title,
			Duration: dur,
			Rate:     rate,
			In:       0,
			Out:      dur,
			Start:    start,
			End:      end,
			Marker: Marker{
				Name:    s.Title,
				Comment: "Duration: " + timeutil.FormatClock(s.Duration),
				In:      start,
				Out:     end,
			},
		})
	}

	doc.Sequence.Media.Video.Track.ClipItems = items

	return doc, nil
}

// Marshal renders the sections as an indented xmeml document.
func Marshal(sections []timer.Section, fps FrameRate) ([]byte, error) {
	doc, err := Build(sections, fps)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString(xml.Header)
	buf.WriteString("<!DOCTYPE xmeml>\n")

	enc := xml.NewEncoder(&buf)
	enc.Indent("", indent)

	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Export writes the document for sections to w. Nothing is written unless the
// whole document could be rendered.
func Export(w io.Writer, sections []timer.Section, fps FrameRate) error {
	b, err := Marshal(sections, fps)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}
