package seed

import "testing"

func TestShowcaseTranscripts(t *testing.T) {
	got, err := ShowcaseTranscripts()
	if err != nil {
		t.Fatalf("ShowcaseTranscripts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 transcripts, got %d", len(got))
	}
	if got[0].VideoID != "react-hooks-intro" {
		t.Fatalf("unexpected first video %q", got[0].VideoID)
	}
	for _, tr := range got {
		if len(tr.Segments) != 7 {
			t.Fatalf("%s: expected 7 segments, got %d", tr.VideoID, len(tr.Segments))
		}
		if tr.Segments[0].Timestamp != "00:00" {
			t.Fatalf("%s: first timestamp %q", tr.VideoID, tr.Segments[0].Timestamp)
		}
	}
}
