package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueCounts is a histogram of stringified parameter values that remembers
// first-insertion order. Ties in Best are broken by that order: the value
// recorded first among those sharing the maximum count wins. The contract is
// explicit here because recommendation output depends on it.
type ValueCounts struct {
	order  []string
	counts map[string]int
}

// Inc increments the count for value, registering it on first occurrence.
func (v *ValueCounts) Inc(value string) {
	if v.counts == nil {
		v.counts = make(map[string]int)
	}
	if _, ok := v.counts[value]; !ok {
		v.order = append(v.order, value)
	}
	v.counts[value]++
}

// Count returns the recorded count for value.
func (v *ValueCounts) Count(value string) int {
	return v.counts[value]
}

// Values returns the recorded values in first-insertion order.
func (v *ValueCounts) Values() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Len returns the number of distinct values.
func (v *ValueCounts) Len() int { return len(v.order) }

// Best returns the value with the highest count, first-seen wins on ties.
func (v *ValueCounts) Best() (string, int, bool) {
	if len(v.order) == 0 {
		return "", 0, false
	}
	best := v.order[0]
	for _, val := range v.order[1:] {
		if v.counts[val] > v.counts[best] {
			best = val
		}
	}
	return best, v.counts[best], true
}

// Clone returns an independent copy.
func (v *ValueCounts) Clone() *ValueCounts {
	out := &ValueCounts{}
	for _, val := range v.order {
		out.order = append(out.order, val)
		if out.counts == nil {
			out.counts = make(map[string]int)
		}
		out.counts[val] = v.counts[val]
	}
	return out
}

// MarshalJSON writes the histogram as a JSON object in insertion order,
// matching the document shape written by earlier deployments.
func (v *ValueCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, val := range v.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", v.counts[val])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving its key order.
func (v *ValueCounts) UnmarshalJSON(data []byte) error {
	v.order = nil
	v.counts = nil
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("value counts: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("value counts: count for %q: %w", key, err)
		}
		if v.counts == nil {
			v.counts = make(map[string]int)
		}
		if _, ok := v.counts[key]; !ok {
			v.order = append(v.order, key)
		}
		v.counts[key] = count
	}
	_, err = dec.Token() // closing brace
	return err
}

// ParamFrequency maps parameter names to their value histograms, preserving
// the order in which parameters were first seen.
type ParamFrequency struct {
	order  []string
	params map[string]*ValueCounts
}

// Inc records one occurrence of value for param.
func (p *ParamFrequency) Inc(param, value string) {
	if p.params == nil {
		p.params = make(map[string]*ValueCounts)
	}
	vc, ok := p.params[param]
	if !ok {
		vc = &ValueCounts{}
		p.params[param] = vc
		p.order = append(p.order, param)
	}
	vc.Inc(value)
}

// Names returns parameter names in first-insertion order.
func (p *ParamFrequency) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Get returns the histogram for param, or nil when the param is unknown.
func (p *ParamFrequency) Get(param string) *ValueCounts {
	return p.params[param]
}

// Clone returns an independent copy.
func (p *ParamFrequency) Clone() *ParamFrequency {
	out := &ParamFrequency{}
	for _, name := range p.order {
		if out.params == nil {
			out.params = make(map[string]*ValueCounts)
		}
		out.order = append(out.order, name)
		out.params[name] = p.params[name].Clone()
	}
	return out
}

// MarshalJSON writes the table as a JSON object in insertion order.
func (p *ParamFrequency) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(p.params[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving its key order.
func (p *ParamFrequency) UnmarshalJSON(data []byte) error {
	p.order = nil
	p.params = nil
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("param frequency: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		vc := &ValueCounts{}
		if err := dec.Decode(vc); err != nil {
			return fmt.Errorf("param frequency: values for %q: %w", key, err)
		}
		if p.params == nil {
			p.params = make(map[string]*ValueCounts)
		}
		p.params[key] = vc
		p.order = append(p.order, key)
	}
	_, err = dec.Token()
	return err
}
