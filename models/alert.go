package models

import (
	"encoding/json"
	"errors"
)

const AlertStateOpen = "open"

type AlertPackage struct {
	Ecosystem string `json:"ecosystem"`
	Name      string `json:"name"`
}

type AlertDependency struct {
	Package      AlertPackage `json:"package"`
	ManifestPath string       `json:"manifest_path"`
}

type AlertAdvisory struct {
	GhsaId   string `json:"ghsa_id"`
	Summary  string `json:"summary"`
	Severity string `json:"severity"`
}

// Alert is a Dependabot alert. Only the fields needed for aggregation and
// reporting are decoded; the original object is kept and re-emitted as is.
// State and severity drive the counts and must decode; the other fields are
// best effort and left zero when GitHub sends an unexpected type.
type Alert struct {
	Number           int             `json:"number"`
	State            string          `json:"state"`
	HTMLURL          string          `json:"html_url"`
	SecurityAdvisory AlertAdvisory   `json:"security_advisory"`
	Dependency       AlertDependency `json:"dependency"`

	raw json.RawMessage
}

type countedFields struct {
	State            string `json:"state"`
	SecurityAdvisory struct {
		Severity string `json:"severity"`
	} `json:"security_advisory"`
}

func (a *Alert) UnmarshalJSON(data []byte) error {
	var counted countedFields
	if err := json.Unmarshal(data, &counted); err != nil {
		return err
	}

	type alert Alert
	var decoded alert
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(data, &decoded); err != nil && !errors.As(err, &typeErr) {
		return err
	}

	*a = Alert(decoded)
	a.State = counted.State
	a.SecurityAdvisory.Severity = counted.SecurityAdvisory.Severity
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (a Alert) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	type alert Alert
	return json.Marshal(alert(a))
}

func (a *Alert) IsOpen() bool {
	return a.State == AlertStateOpen
}

func (a *Alert) Purl() (Purl, error) {
	return PurlFromDependency(a.Dependency.Package.Ecosystem, a.Dependency.Package.Name)
}
