package chunker

import "github.com/bububa/smart-chunker/components/tokenizer"

// ServiceInfo describes the chunking engine and its tokenizer state.
type ServiceInfo struct {
	Service  string   `json:"service" yaml:"service"`
	Status   string   `json:"status" yaml:"status"`
	Encoding string   `json:"encoding" yaml:"encoding"`
	Features []string `json:"features" yaml:"features"`
}

// Info reports the state of tke, or of the process-wide tokenizer when tke
// is nil.
func Info(tke *tokenizer.TikToken) ServiceInfo {
	if tke == nil {
		tke = tokenizer.Default()
	}
	status := "not initialized"
	if tke.Initialized() {
		status = "initialized"
	}
	return ServiceInfo{
		Service:  "SmartChunker",
		Status:   status,
		Encoding: tke.Encoding(),
		Features: []string{
			"Sentence-aware chunking",
			"Token-based splitting",
			"Configurable overlap",
			"Long sentence handling",
		},
	}
}
