package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/keystack/analyzer"
	"github.com/ChainSafe/keystack/script"
)

// JSONRenderer renders runs in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) RenderTranscript(tr *script.Transcript, output io.Writer) error {
	return json.NewEncoder(output).Encode(tr)
}

func (r *JSONRenderer) RenderIssues(name string, issues []*analyzer.Issue, output io.Writer) error {
	return json.NewEncoder(output).Encode(struct {
		Script string            `json:"script"`
		Issues []*analyzer.Issue `json:"issues"`
	}{Script: name, Issues: issues})
}

func (r *JSONRenderer) Format() string {
	return "json"
}
