package analyzer

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteReport renders the summary as yaml.
func WriteReport(w io.Writer, sum Summary) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(sum)
}
