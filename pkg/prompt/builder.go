package prompt

import (
	"fmt"
	"strings"

	"career-assistant-be/pkg/career"
)

// Build renders the instruction sent to the model for one submitted form.
// It is pure: the same intent, data and name always give the same prompt.
func Build(intent career.Intent, data career.FormData, displayName string) (string, error) {
	b := &builder{data: data, name: displayName}

	switch intent {
	case career.IntentExplore:
		b.writeExplore()
	case career.IntentPathway:
		b.writePathway()
	case career.IntentResume:
		b.writeResume()
	default:
		return "", fmt.Errorf("build prompt: %w: %q", career.ErrUnknownIntent, string(intent))
	}

	return b.sb.String(), nil
}

type builder struct {
	sb   strings.Builder
	data career.FormData
	name string
}

func (b *builder) line(format string, args ...any) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n")
}

func (b *builder) greeting(followUp string) {
	b.line(`Start with: "Hello %s! " %s`, b.name, followUp)
}

func (b *builder) formatting() {
	b.line("Format your response with proper spacing and explicit line breaks. Use bold text (**like this**) for headers.")
}

func (b *builder) writeExplore() {
	b.greeting("followed by a kind compliment.")
	b.line("You are a career advisor. Based on the answers below, suggest 3 career paths.")
	b.line("")
	b.line("Subjects enjoyed at school: %s", b.data[career.FieldEnjoyedSubjects])
	b.line("Subjects disliked at school: %s", b.data[career.FieldDislikedSubjects])
	b.line("Hobbies and interests: %s", b.data[career.FieldHobbies])
	b.line("Preferred work environment: %s", b.data[career.FieldWorkEnvironment])
	b.line("Lifestyle: %s", b.data.OrNotSpecified(career.FieldLifestyle))
	b.line("")
	b.line("For each of the 3 careers, include:")
	b.line("- Title and short description")
	b.line("- Estimated U.S. starting salary")
	b.line("- Required education")
	b.line("- Recommended study field")
	b.line("- Where to start learning (platforms/certifications)")
	b.line("")
	b.formatting()
	b.line("If the input is vague, off-topic or silly, respond with a friendly joke related to careers instead.")
}

func (b *builder) writePathway() {
	b.greeting("followed by a professional compliment.")
	b.line("You are a career path planner. Based on the user's goal and background, provide practical steps to reach their target career.")
	b.line("")
	b.line("Dream Career: %s", b.data[career.FieldDreamCareer])
	b.line("Current Education/Experience: %s", b.data[career.FieldEducationLevel])
	b.line("Preferred Learning Format: %s", b.data[career.FieldLearningFormat])
	b.line("Self Description: %s", b.data.OrNotSpecified(career.FieldSelfDescription))
	b.line("")
	b.line("Include these sections:")
	b.line("- Certifications")
	b.line("- Education")
	b.line("- Skills")
	b.line("- Timeline")
	b.line("- Job posting examples")
	b.line("")
	b.formatting()
	b.line("If the input is unclear, respond with a career joke. If it is very vague, incorrect or the user is trying to be funny, make your reply even funnier.")
}

func (b *builder) writeResume() {
	b.greeting("followed by a compliment about the experience.")
	b.line("You are a resume analysis expert. Compare the resume to the job description.")
	b.line("")
	b.line("Resume Content:")
	b.line("%s", b.data[career.FieldResumeText])
	b.line("")
	b.line("Job Description:")
	b.line("%s", b.data[career.FieldJobDescription])
	b.line("")
	b.line("Analyze and answer in this structure:")
	b.line("1. What parts match the job")
	b.line("2. What is missing or weak")
	b.line("3. Rewrite the full resume to better match the job")
	b.line("")
	b.formatting()
	b.line("If the input is empty or off-topic, respond with a professional career joke.")
}
