package dock

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tessera-shell/tessera/internal/models"
)

// Predicate is one exclusion rule.
type Predicate struct {
	Name  string
	Match func(c *models.Client) bool
}

// ExclusionPolicy decides whether a window is hidden from the taskbar. Its
// predicates are evaluated in order and the first match wins.
type ExclusionPolicy struct {
	predicates []Predicate
}

// NewExclusionPolicy builds the default predicate chain from configuration:
// missing client, IDE title marker, empty title and class, class pattern.
func NewExclusionPolicy(cfg models.ExcludeConfig) (*ExclusionPolicy, error) {
	markers := make([]string, 0, len(cfg.TitleMarkers))
	for _, m := range cfg.TitleMarkers {
		if m != "" {
			markers = append(markers, m)
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(cfg.ClassPatterns))
	for _, p := range cfg.ClassPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid class pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	return &ExclusionPolicy{predicates: []Predicate{
		{Name: "missing", Match: func(c *models.Client) bool {
			return c == nil
		}},
		{Name: "title-marker", Match: func(c *models.Client) bool {
			for _, m := range markers {
				if strings.Contains(c.Title, m) {
					return true
				}
			}
			return false
		}},
		{Name: "placeholder", Match: func(c *models.Client) bool {
			return c.Title == "" && c.Class == ""
		}},
		{Name: "class-pattern", Match: func(c *models.Client) bool {
			for _, re := range patterns {
				if re.MatchString(c.Class) {
					return true
				}
			}
			return false
		}},
	}}, nil
}

// NewExclusionPolicyFrom builds a policy from explicit predicates.
func NewExclusionPolicyFrom(predicates ...Predicate) *ExclusionPolicy {
	return &ExclusionPolicy{predicates: predicates}
}

// ShouldExclude reports whether c must not appear on the taskbar.
func (p *ExclusionPolicy) ShouldExclude(c *models.Client) bool {
	_, excluded := p.Reason(c)
	return excluded
}

// Reason returns the name of the first matching predicate.
func (p *ExclusionPolicy) Reason(c *models.Client) (string, bool) {
	if p == nil {
		return "missing", c == nil
	}
	for _, pred := range p.predicates {
		if pred.Match(c) {
			return pred.Name, true
		}
	}
	return "", false
}
