// Package catalog holds the read-only set of document templates users can
// pick from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

type Category string

const (
	CategoryAll Category = "Все" // filter wildcard, never a template category

	CategoryRealEstate Category = "Недвижимость"
	CategoryServices   Category = "Услуги"
	CategoryMoney      Category = "Деньги"
	CategoryJob        Category = "Работа"
	CategoryBusiness   Category = "Бизнес"
	CategoryFamily     Category = "Семья"
	CategoryWebsite    Category = "Сайт"
	CategoryTax        Category = "Налоговая"
	CategoryInvoices   Category = "Накладные"
	CategoryInternal   Category = "Внутренние"
	CategoryResume     Category = "Резюме"
	CategoryEmployer   Category = "Для работодателя"
	CategoryHR         Category = "Документы HR"
)

// categoryOrder is the order categories are offered in, wildcard first.
var categoryOrder = []Category{
	CategoryAll,
	CategoryRealEstate,
	CategoryServices,
	CategoryMoney,
	CategoryJob,
	CategoryBusiness,
	CategoryFamily,
	CategoryWebsite,
	CategoryTax,
	CategoryInvoices,
	CategoryInternal,
	CategoryResume,
	CategoryEmployer,
	CategoryHR,
}

// ParseCategory accepts any template category or the wildcard.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categoryOrder {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type Complexity string

const (
	ComplexitySimple  Complexity = "Простой"
	ComplexityMedium  Complexity = "Средний"
	ComplexityComplex Complexity = "Сложный"
)

func (c Complexity) valid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	}
	return false
}

// Template is an immutable catalog entry.
type Template struct {
	ID           string     `yaml:"id" json:"id"`
	Title        string     `yaml:"title" json:"title"`
	Description  string     `yaml:"description" json:"description"`
	Category     Category   `yaml:"category" json:"category"`
	Complexity   Complexity `yaml:"complexity" json:"complexity"`
	Icon         string     `yaml:"icon" json:"icon"`
	Tags         []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	RequiredInfo []string   `yaml:"required_info" json:"required_info"`
}

func (t Template) clone() Template {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	if t.RequiredInfo != nil {
		t.RequiredInfo = append([]string(nil), t.RequiredInfo...)
	}
	return t
}

var (
	ErrDuplicateID     = errors.New("duplicate template id")
	ErrInvalidTemplate = errors.New("invalid template")
)

// Catalog is an ordered, read-only collection of templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

type document struct {
	Templates []Template `yaml:"templates"`
}

// Load parses and validates a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Templates)
}

// New builds a catalog from templates, keeping their order.
func New(templates []Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for i, t := range templates {
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("template #%d: %w", i, err)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t.clone())
	}
	return c, nil
}

func validate(t Template) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: %s has no title", ErrInvalidTemplate, t.ID)
	}
	if c, ok := ParseCategory(string(t.Category)); !ok || c == CategoryAll {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidTemplate, t.ID, t.Category)
	}
	if !t.Complexity.valid() {
		return fmt.Errorf("%w: %s has unknown complexity %q", ErrInvalidTemplate, t.ID, t.Complexity)
	}
	return nil
}

// Default loads the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Load(defaultTemplates)
}

// MustDefault is Default for program start-up.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

// All returns every template in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.clone()
	}
	return out
}

func (c *Catalog) ByID(id string) (Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i].clone(), true
}

// Categories lists the filter options, wildcard first.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

func (c *Catalog) Filter(category Category, query string) []Template {
	return Filter(c.templates, category, query)
}

// Filter keeps templates in category (any for CategoryAll) whose title
// contains query, ignoring case. Input order is preserved.
func Filter(templates []Template, category Category, query string) []Template {
	needle := strings.ToLower(query)
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		if category != CategoryAll && t.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}
