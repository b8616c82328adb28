// Package catalog holds the static list of courses shown on the dashboard.
// Courses are never persisted; the built-in list can be replaced with a YAML
// or JSON file at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Course is a single catalog entry. Lessons are kept in display order.
type Course struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Lessons     []string `json:"lessons" yaml:"lessons"`
}

// Catalog is an immutable, ordered set of courses with unique ids.
type Catalog struct {
	courses []Course
	index   map[int]int
}

type catalogFile struct {
	Courses []Course `json:"courses" yaml:"courses"`
}

// New validates courses and builds a Catalog. Ids must be positive and
// unique and every course needs a title.
func New(courses []Course) (*Catalog, error) {
	c := &Catalog{
		courses: make([]Course, 0, len(courses)),
		index:   make(map[int]int, len(courses)),
	}
	for _, course := range courses {
		if course.ID <= 0 {
			return nil, fmt.Errorf("course %q: id must be positive, got %d", course.Title, course.ID)
		}
		if strings.TrimSpace(course.Title) == "" {
			return nil, fmt.Errorf("course %d: empty title", course.ID)
		}
		if _, dup := c.index[course.ID]; dup {
			return nil, fmt.Errorf("course %d: duplicate id", course.ID)
		}
		course.Lessons = append([]string(nil), course.Lessons...)
		c.index[course.ID] = len(c.courses)
		c.courses = append(c.courses, course)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultCourses)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file. Files ending in .yaml or .yml are parsed as
// YAML, anything else as JSON.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Courses) == 0 {
		return nil, fmt.Errorf("catalog %s has no courses", path)
	}
	return New(f.Courses)
}

// List returns a copy of the courses in definition order.
func (c *Catalog) List() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Get returns the course with the given id.
func (c *Catalog) Get(id int) (Course, bool) {
	i, ok := c.index[id]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

func (c *Catalog) Has(id int) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.courses)
}
