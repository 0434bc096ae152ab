// Package portfolio defines the Portfolio Document: the single JSON blob that
// holds every section of the site.
package portfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownSection = errors.New("unknown section")

// Section names one top-level key of the document.
type Section string

const (
	SectionAbout        Section = "about"
	SectionProjects     Section = "projects"
	SectionSkills       Section = "skills"
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionResearch     Section = "research"
	SectionCompetitions Section = "competitions"
	SectionCourses      Section = "courses"
	SectionContact      Section = "contact"
)

var sections = []Section{
	SectionAbout,
	SectionProjects,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionResearch,
	SectionCompetitions,
	SectionCourses,
	SectionContact,
}

// Sections returns the fixed set of section keys in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

func ParseSection(name string) (Section, error) {
	for _, s := range sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// IsList reports whether the section holds an ordered list of entries.
func (s Section) IsList() bool {
	return s != SectionAbout && s != SectionContact
}

// Document maps section keys to their raw JSON content. Keeping the content
// raw means a section comes back exactly as it was written, unknown fields
// included.
type Document map[Section]json.RawMessage

// Clone returns a deep copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Marshal encodes the document with two-space indentation.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Decode parses a whole document. Keys outside the known set are rejected.
func Decode(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("document is not a JSON object")
	}
	doc := make(Document, len(raw))
	for k, v := range raw {
		s, err := ParseSection(k)
		if err != nil {
			return nil, err
		}
		doc[s] = v
	}
	return doc, nil
}

func build(v map[Section]any) Document {
	doc := make(Document, len(v))
	for k, content := range v {
		b, err := json.Marshal(content)
		if err != nil {
			// only called with the static values below
			panic(fmt.Sprintf("portfolio: marshal %s: %v", k, err))
		}
		doc[k] = b
	}
	return doc
}

// Skeleton is the empty document an admin reset produces: every section
// present, object sections with empty strings, list sections empty.
func Skeleton() Document {
	return build(map[Section]any{
		SectionAbout:        About{},
		SectionProjects:     []Project{},
		SectionSkills:       []Skill{},
		SectionExperience:   []Experience{},
		SectionEducation:    []Education{},
		SectionCourses:      []Course{},
		SectionResearch:     []Research{},
		SectionCompetitions: []Competition{},
		SectionContact:      Contact{},
	})
}
