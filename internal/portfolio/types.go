package portfolio

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// EntryID identifies an entry within its list section. Seed data uses
// numbers and hand-edited data sometimes uses strings; both are kept as their
// textual form so 1 and "1" name the same entry.
type EntryID string

func (id EntryID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *EntryID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = EntryID(s)
		return nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return err
	}
	*id = EntryID(n.String())
	return nil
}

type About struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Image          string `json:"image"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PresentAddress string `json:"presentAddress"`
	Hometown       string `json:"hometown"`
	Availability   string `json:"availability"`
	Github         string `json:"github"`
	Linkedin       string `json:"linkedin"`
	ResumeURL      string `json:"resumeUrl"`
}

type Project struct {
	ID           EntryID  `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	Status       string   `json:"status,omitempty"`
	Category     []string `json:"category,omitempty"`
	TeamSize     string   `json:"teamSize,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Year         string   `json:"year,omitempty"`
}

type Skill struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	Experience  string   `json:"experience"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

type Experience struct {
	ID           EntryID  `json:"id"`
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	ID          EntryID `json:"id"`
	Degree      string  `json:"degree"`
	Institution string  `json:"institution"`
	Period      string  `json:"period"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	GPA         string  `json:"gpa,omitempty"`
}

type Course struct {
	ID             EntryID  `json:"id"`
	Title          string   `json:"title"`
	Platform       string   `json:"platform"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	CompletionDate string   `json:"completionDate"`
	Instructor     string   `json:"instructor"`
	CertificateURL string   `json:"certificateUrl,omitempty"`
	CourseURL      string   `json:"courseUrl,omitempty"`
	Grade          string   `json:"grade,omitempty"`
	Skills         []string `json:"skills"`
}

type Research struct {
	ID          EntryID `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Conference  string  `json:"conference"`
	Year        string  `json:"year"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	PDFURL      string  `json:"pdfUrl,omitempty"`
	Link        string  `json:"link,omitempty"`
}

type Competition struct {
	ID             EntryID `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Organizer      string  `json:"organizer"`
	Date           string  `json:"date"`
	Position       string  `json:"position"`
	CertificateURL string  `json:"certificateUrl,omitempty"`
	Image          string  `json:"image,omitempty"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}
