package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type sarifOutput struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
	Help             sarifMessage `json:"help"`
}

type sarifResult struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"`
	Message    sarifMessage      `json:"message"`
	Locations  []sarifLocation   `json:"locations,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

const unusedRuleID = "DEPSWEEP001"

// WriteSARIF writes flagged dependencies as SARIF 2.1.0 warnings located in
// the manifest.
func WriteSARIF(w io.Writer, r Report, toolVersion string) error {
	rules := []sarifRule{{
		ID:               unusedRuleID,
		Name:             "PotentiallyUnusedDependency",
		ShortDescription: sarifMessage{Text: "Declared dependency is not referenced in source"},
		Help:             sarifMessage{Text: "Verify: " + strings.Join(Hints, "; ")},
	}}

	results := []sarifResult{}
	for _, d := range r.Flagged {
		res := sarifResult{
			RuleID: unusedRuleID,
			Level:  "warning",
			Message: sarifMessage{
				Text: fmt.Sprintf("Dependency %s (%s) is %s", d.Name, d.Req, strings.ToLower(UnusedMarker)),
			},
			Properties: map[string]string{"features": debugList(d.Features)},
		}
		if d.Kind != "" {
			res.Properties["kind"] = d.Kind
		}
		if r.Manifest != "" {
			res.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: r.Manifest},
				},
			}}
		}
		results = append(results, res)
	}

	out := sarifOutput{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "depsweep",
						Version:        toolVersion,
						InformationURI: "https://github.com/1homsi/depsweep",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
