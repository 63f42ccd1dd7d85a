package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/skillnest-backend/internal/domain"
)

//go:embed showcase.yaml
var showcaseYAML []byte

type showcaseFile struct {
	Transcripts []showcaseTranscript `yaml:"transcripts"`
}

type showcaseTranscript struct {
	VideoID  string                    `yaml:"videoId"`
	CourseID string                    `yaml:"courseId"`
	Title    string                    `yaml:"title"`
	MediaURL string                    `yaml:"mediaUrl"`
	Duration string                    `yaml:"duration"`
	Segments []types.TranscriptSegment `yaml:"segments"`
}

// ShowcaseTranscripts returns fresh copies of the demo transcripts bundled with the binary.
func ShowcaseTranscripts() ([]*types.VideoTranscript, error) {
	var f showcaseFile
	if err := yaml.Unmarshal(showcaseYAML, &f); err != nil {
		return nil, fmt.Errorf("parse showcase transcripts: %w", err)
	}
	out := make([]*types.VideoTranscript, 0, len(f.Transcripts))
	for _, t := range f.Transcripts {
		if t.VideoID == "" || len(t.Segments) == 0 {
			return nil, fmt.Errorf("showcase transcript %q is incomplete", t.Title)
		}
		out = append(out, &types.VideoTranscript{
			VideoID:  t.VideoID,
			CourseID: t.CourseID,
			Title:    t.Title,
			MediaURL: t.MediaURL,
			Duration: t.Duration,
			Segments: t.Segments,
		})
	}
	return out, nil
}
