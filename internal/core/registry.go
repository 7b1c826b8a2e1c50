package core

import (
	"fmt"
	"sort"
	"sync"
)

// GridTemplate is a named sticker sheet shape.
type GridTemplate struct {
	Key         string `json:"key"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Capacity is the number of stickers on one page.
func (t GridTemplate) Capacity() int {
	return t.Cols * t.Rows
}

// DefaultTemplateKey is the template used when none is chosen.
const DefaultTemplateKey = "3x8"

var (
	registry   = make(map[string]GridTemplate)
	registryMu sync.RWMutex
)

func init() {
	for _, t := range builtinTemplates {
		RegisterTemplate(t)
	}
}

var builtinTemplates = []GridTemplate{
	{Key: "3x8", Cols: 3, Rows: 8, Name: "3×8 (по умолчанию)", Description: "3 колонки × 8 рядов = 24 наклейки на лист"},
	{Key: "3x7", Cols: 3, Rows: 7, Name: "3×7", Description: "3 колонки × 7 рядов = 21 наклейка на лист"},
	{Key: "2x10", Cols: 2, Rows: 10, Name: "2×10", Description: "2 колонки × 10 рядов = 20 наклеек на лист"},
	{Key: "4x6", Cols: 4, Rows: 6, Name: "4×6", Description: "4 колонки × 6 рядов = 24 наклейки на лист"},
}

// RegisterTemplate adds a template to the catalog.
// Panics on a duplicate key or non-positive dimensions.
func RegisterTemplate(t GridTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[t.Key]; exists {
		panic(fmt.Sprintf("template already registered: %s", t.Key))
	}
	if t.Cols <= 0 || t.Rows <= 0 {
		panic(fmt.Sprintf("template %s: %v", t.Key, ErrInvalidTemplate))
	}

	registry[t.Key] = t
}

// LookupTemplate returns the template registered under key.
func LookupTemplate(key string) (GridTemplate, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[key]
	if !ok {
		return GridTemplate{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}
	return t, nil
}

// DefaultTemplate returns the catalog's default template.
func DefaultTemplate() GridTemplate {
	t, err := LookupTemplate(DefaultTemplateKey)
	if err != nil {
		panic(err)
	}
	return t
}

// Templates returns every registered template, default first, then by key.
func Templates() []GridTemplate {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]GridTemplate, 0, len(registry))
	for _, t := range registry {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		if (result[i].Key == DefaultTemplateKey) != (result[j].Key == DefaultTemplateKey) {
			return result[i].Key == DefaultTemplateKey
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// TemplateCount returns the number of registered templates.
func TemplateCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
