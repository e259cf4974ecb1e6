package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"
)

type ChecksResult struct {
	Blockers []string        `json:"blockers"`
	Warnings []WarningRecord `json:"warnings"`
}

// WarningRecord covers every shape the checks endpoint emits: a bare
// string, a flat record with a display message and occurrence strings,
// or an articulated record whose instances carry their own display and
// detail lines.
type WarningRecord struct {
	ID          int               `json:"id,omitempty"`
	Display     string            `json:"display,omitempty"`
	Articulated bool              `json:"articulated,omitempty"`
	Instances   []WarningInstance `json:"instances,omitempty"`
}

type WarningInstance struct {
	Display string   `json:"display,omitempty"`
	Details []string `json:"details,omitempty"`
}

func (w *WarningRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var display string
		if err := json.Unmarshal(trimmed, &display); err != nil {
			return err
		}
		*w = WarningRecord{Display: display}
		return nil
	}
	type plainWarningRecord WarningRecord
	var decoded plainWarningRecord
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*w = WarningRecord(decoded)
	return nil
}

func (w *WarningInstance) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var display string
		if err := json.Unmarshal(trimmed, &display); err != nil {
			return err
		}
		*w = WarningInstance{Display: display}
		return nil
	}
	type plainWarningInstance WarningInstance
	var decoded plainWarningInstance
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*w = WarningInstance(decoded)
	return nil
}

// Lines flattens the record to displayable warning lines. Gating cares
// only about record presence; these lines are for rendering.
func (w WarningRecord) Lines() []string {
	if w.Articulated {
		var lines []string
		if strings.TrimSpace(w.Display) != "" {
			lines = append(lines, w.Display)
		}
		for _, instance := range w.Instances {
			if strings.TrimSpace(instance.Display) != "" {
				lines = append(lines, instance.Display)
			}
			for _, detail := range instance.Details {
				if strings.TrimSpace(detail) != "" {
					lines = append(lines, detail)
				}
			}
		}
		return lines
	}
	if strings.TrimSpace(w.Display) != "" {
		return []string{w.Display}
	}
	var lines []string
	for _, instance := range w.Instances {
		if strings.TrimSpace(instance.Display) != "" {
			lines = append(lines, instance.Display)
		}
	}
	return lines
}

func (c ChecksResult) HasBlockers() bool {
	return len(c.Blockers) > 0
}

func (c ChecksResult) HasWarnings() bool {
	return len(c.Warnings) > 0
}

func (c ChecksResult) WarningLines() []string {
	var lines []string
	for _, warning := range c.Warnings {
		lines = append(lines, warning.Lines()...)
	}
	return lines
}

func CloneChecksResult(in ChecksResult) ChecksResult {
	out := ChecksResult{}
	if in.Blockers != nil {
		out.Blockers = append([]string{}, in.Blockers...)
	}
	if in.Warnings != nil {
		out.Warnings = make([]WarningRecord, len(in.Warnings))
		for i, warning := range in.Warnings {
			cloned := warning
			if warning.Instances != nil {
				cloned.Instances = make([]WarningInstance, len(warning.Instances))
				for j, instance := range warning.Instances {
					clonedInstance := instance
					if instance.Details != nil {
						clonedInstance.Details = append([]string{}, instance.Details...)
					}
					cloned.Instances[j] = clonedInstance
				}
			}
			out.Warnings[i] = cloned
		}
	}
	return out
}

// Fingerprint identifies the rendered blocker and warning content. An
// acknowledgment given for one fingerprint must not carry over to a
// different one.
func (c ChecksResult) Fingerprint() string {
	h := sha256.New()
	for _, blocker := range c.Blockers {
		io.WriteString(h, "b:")
		io.WriteString(h, blocker)
		io.WriteString(h, "\n")
	}
	for _, warning := range c.Warnings {
		lines := warning.Lines()
		if len(lines) == 0 {
			io.WriteString(h, "w:\n")
			continue
		}
		for _, line := range lines {
			io.WriteString(h, "w:")
			io.WriteString(h, line)
			io.WriteString(h, "\n")
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
