package handover

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the artifact produced at finalization: a rendered document
// plus the counts the caller may surface without parsing it.
type Summary struct {
	Document      string    `json:"document"`
	PatientCount  int       `json:"patient_count"`
	TaskCount     int       `json:"task_count"`
	CriticalCount int       `json:"critical_count"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// priorityTokens maps each task priority to its fixed rendering token.
var priorityTokens = map[TaskPriority]string{
	PriorityUrgent: "[!!!]",
	PriorityHigh:   "[!!]",
	PriorityMedium: "[!]",
	PriorityLow:    "[-]",
}

func priorityToken(p TaskPriority) string {
	if tok, ok := priorityTokens[p]; ok {
		return tok
	}
	return "[?]"
}

const summaryTimeLayout = "2006-01-02 15:04 MST"

// GenerateSummary renders the handover report. It is pure: fixed inputs and
// a fixed clock always produce byte-identical output, and inputs are never
// mutated. Patients render in input order; each patient block lists only
// that patient's tasks, unassigned tasks appear only in the general section.
func GenerateSummary(patients []*PatientInfo, tasks []*TaskInfo, critical []CriticalPatientInfo, now time.Time) *Summary {
	var b strings.Builder

	b.WriteString("SHIFT HANDOVER SUMMARY\n")
	b.WriteString("======================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(summaryTimeLayout))

	b.WriteString("STATISTICS\n")
	fmt.Fprintf(&b, "  Patients: %d\n", len(patients))
	fmt.Fprintf(&b, "  Tasks: %d\n", len(tasks))
	fmt.Fprintf(&b, "  Critical patients: %d\n\n", len(critical))

	if len(critical) > 0 {
		b.WriteString("CRITICAL PATIENTS\n")
		for _, c := range critical {
			fmt.Fprintf(&b, "  * %s", c.PatientName)
			if c.BedNumber != "" {
				fmt.Fprintf(&b, " (bed %s)", c.BedNumber)
			}
			fmt.Fprintf(&b, " - %s\n", c.Reason)
			fmt.Fprintf(&b, "    pending tasks: %d, urgent: %d\n", c.PendingTasksCount, c.UrgentTasksCount)
		}
		b.WriteString("\n")
	}

	for _, p := range patients {
		writePatientSection(&b, p, tasks)
	}

	writeGeneralTasksSection(&b, tasks)

	b.WriteString("NOTES FOR INCOMING SHIFT\n")
	b.WriteString("  (add any verbal handover points here)\n")

	return &Summary{
		Document:      b.String(),
		PatientCount:  len(patients),
		TaskCount:     len(tasks),
		CriticalCount: len(critical),
		GeneratedAt:   now,
	}
}

func writePatientSection(b *strings.Builder, p *PatientInfo, tasks []*TaskInfo) {
	fmt.Fprintf(b, "PATIENT: %s (MRN %s)\n", p.FullName(), p.MRN)

	var details []string
	if p.BedNumber != nil {
		details = append(details, "bed "+*p.BedNumber)
	}
	if p.Room != nil {
		details = append(details, "room "+*p.Room)
	}
	if p.Gender != nil {
		details = append(details, *p.Gender)
	}
	if p.BirthDate != nil {
		details = append(details, "born "+p.BirthDate.Format("2006-01-02"))
	}
	if len(details) > 0 {
		fmt.Fprintf(b, "  %s\n", strings.Join(details, ", "))
	}
	if p.Diagnosis != nil {
		fmt.Fprintf(b, "  Diagnosis: %s\n", *p.Diagnosis)
	}
	if p.Allergies != nil {
		fmt.Fprintf(b, "  Allergies: %s\n", *p.Allergies)
	}
	if n := p.LatestNote; n != nil {
		writeNoteLines(b, n)
	}

	var hasTasks bool
	for _, t := range tasks {
		if t.PatientID == nil || *t.PatientID != p.ID {
			continue
		}
		if !hasTasks {
			b.WriteString("  Tasks:\n")
			hasTasks = true
		}
		writeTaskLine(b, "    ", t)
	}

	b.WriteString("\n")
}

func writeNoteLines(b *strings.Builder, n *NoteInfo) {
	var vitals []string
	if n.BP != nil {
		vitals = append(vitals, "BP "+*n.BP)
	}
	if n.HeartRate != nil {
		vitals = append(vitals, fmt.Sprintf("HR %d", *n.HeartRate))
	}
	if n.RespRate != nil {
		vitals = append(vitals, fmt.Sprintf("RR %d", *n.RespRate))
	}
	if n.Temperature != nil {
		vitals = append(vitals, fmt.Sprintf("T %.1f", *n.Temperature))
	}
	if n.O2Sat != nil {
		vitals = append(vitals, fmt.Sprintf("SpO2 %d%%", *n.O2Sat))
	}
	if len(vitals) > 0 {
		fmt.Fprintf(b, "  Vitals: %s\n", strings.Join(vitals, ", "))
	}
	if n.Assessment != nil {
		fmt.Fprintf(b, "  Assessment: %s\n", *n.Assessment)
	}
	if n.Plan != nil {
		fmt.Fprintf(b, "  Plan: %s\n", *n.Plan)
	}
}

func writeGeneralTasksSection(b *strings.Builder, tasks []*TaskInfo) {
	var header bool
	for _, t := range tasks {
		if t.PatientID != nil {
			continue
		}
		if !header {
			b.WriteString("GENERAL TASKS\n")
			header = true
		}
		writeTaskLine(b, "  ", t)
	}
	if header {
		b.WriteString("\n")
	}
}

func writeTaskLine(b *strings.Builder, indent string, t *TaskInfo) {
	fmt.Fprintf(b, "%s%s %s (%s)", indent, priorityToken(t.Priority), t.Title, t.Status)
	if t.DueDate != nil {
		fmt.Fprintf(b, " due %s", t.DueDate.Format("2006-01-02 15:04"))
	}
	if t.AssignedName != nil {
		fmt.Fprintf(b, " - %s", *t.AssignedName)
	}
	b.WriteString("\n")
}
