package career

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotSpecified replaces optional fields the user left blank.
const NotSpecified = "Not specified"

// Field keys, shared with the browser forms.
const (
	FieldEnjoyedSubjects  = "enjoyedSubjects"
	FieldDislikedSubjects = "dislikedSubjects"
	FieldHobbies          = "hobbies"
	FieldWorkEnvironment  = "workEnvironment"
	FieldLifestyle        = "lifestyle"

	FieldDreamCareer     = "dreamCareer"
	FieldEducationLevel  = "educationLevel"
	FieldLearningFormat  = "learningFormat"
	FieldSelfDescription = "selfDescription"

	FieldResumeText     = "resumeText"
	FieldJobDescription = "jobDescription"
)

var ErrUnknownField = errors.New("unknown form field")

// FormData maps field key to the raw value typed by the user.
type FormData map[string]string

func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// OrNotSpecified returns the value for key, or NotSpecified when it is absent or empty.
func (d FormData) OrNotSpecified(key string) string {
	if v := d[key]; v != "" {
		return v
	}
	return NotSpecified
}

type Field struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

type definition struct {
	title       string
	description string
	fields      []Field
}

var titleCaser = cases.Title(language.English, cases.NoLower)

func field(key, label string, required bool) Field {
	if label == "" {
		label = titleCaser.String(key)
	}
	return Field{
		Key:         key,
		Label:       label,
		Placeholder: fmt.Sprintf("Enter your %s...", strings.ToLower(key)),
		Required:    required,
	}
}

var definitions = map[Intent]definition{
	IntentExplore: {
		title:       "Explore Where You Belong",
		description: "Discover career paths that match your interests and skills",
		fields: []Field{
			field(FieldEnjoyedSubjects, "Subjects Enjoyed at School", true),
			field(FieldDislikedSubjects, "Subjects Disliked at School", true),
			field(FieldHobbies, "", true),
			field(FieldWorkEnvironment, "Preferred Work Environment", true),
			field(FieldLifestyle, "Lifestyle (Optional)", false),
		},
	},
	IntentPathway: {
		title:       "Explore My Career Path",
		description: "Get a detailed roadmap for your chosen career",
		fields: []Field{
			field(FieldDreamCareer, "Dream Career/Job Title", true),
			field(FieldEducationLevel, "Current Education/Experience Level", true),
			field(FieldLearningFormat, "Preferred Learning Format", true),
			field(FieldSelfDescription, "Brief Self Description (Optional)", false),
		},
	},
	IntentResume: {
		title:       "Resume Tailor",
		description: "Optimize your resume with AI-powered suggestions",
		fields: []Field{
			{Key: FieldResumeText, Label: "Resume", Placeholder: "Drag 'n' drop your resume, or click to select", Required: true},
			{Key: FieldJobDescription, Label: "Job Description", Placeholder: "Paste the job description here...", Required: true},
		},
	},
}

// Fields returns the form definition for an intent.
func Fields(i Intent) ([]Field, error) {
	def, ok := definitions[i]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, string(i))
	}
	out := make([]Field, len(def.fields))
	copy(out, def.fields)
	return out, nil
}

// ValidationError lists the required fields that were left empty.
type ValidationError struct {
	Intent  Intent
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s form is missing required fields: %s", e.Intent, strings.Join(e.Missing, ", "))
}

// Submission is a validated copy of a form, tagged with the intent that owns it.
type Submission struct {
	Intent Intent
	Data   FormData
}

// Collector accumulates field edits for one intent. It performs no I/O.
type Collector struct {
	intent Intent
	fields []Field
	values FormData
}

func NewCollector(i Intent) (*Collector, error) {
	fields, err := Fields(i)
	if err != nil {
		return nil, err
	}
	values := make(FormData, len(fields))
	for _, f := range fields {
		values[f.Key] = ""
	}
	return &Collector{intent: i, fields: fields, values: values}, nil
}

func (c *Collector) Set(key, value string) error {
	if _, ok := c.values[key]; !ok {
		return fmt.Errorf("%w: %s form has no field %q", ErrUnknownField, c.intent, key)
	}
	c.values[key] = value
	return nil
}

func (c *Collector) SetAll(values map[string]string) error {
	for k, v := range values {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Values returns a copy of the current edits.
func (c *Collector) Values() FormData {
	return c.values.Clone()
}

// Validate applies required-field semantics: a required value must be non-empty.
func (c *Collector) Validate() error {
	var missing []string
	for _, f := range c.fields {
		if f.Required && c.values[f.Key] == "" {
			missing = append(missing, f.Key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Intent: c.intent, Missing: missing}
	}
	return nil
}

func (c *Collector) Submit() (Submission, error) {
	if err := c.Validate(); err != nil {
		return Submission{}, err
	}
	return Submission{Intent: c.intent, Data: c.values.Clone()}, nil
}
