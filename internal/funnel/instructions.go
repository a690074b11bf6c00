package funnel

import (
	"fmt"
	"strings"
)

// BuildInstructions renders the system guidance handed to the text-generation
// collaborator: the fixed persona preamble followed by the directive for the
// lead's current stage, with the already-collected fields interpolated.
func (e *Engine) BuildInstructions(lead LeadState) string {
	var sb strings.Builder
	sb.WriteString(e.pack.preamble)
	sb.WriteString(e.stageDirective(lead))
	return sb.String()
}

func (e *Engine) stageDirective(lead LeadState) string {
	d := e.pack.directives

	switch lead.Stage {
	case StageGreeting:
		return d.greeting
	case StageCollectName:
		return d.collectName
	case StageIndustry:
		return fmt.Sprintf(d.industry, firstName(lead.Name))
	case StageExplaining:
		return fmt.Sprintf(d.explaining, firstName(lead.Name), lead.Industry)
	case StagePitchCall:
		return fmt.Sprintf(d.pitchCall, firstName(lead.Name))
	case StageCollectEmail:
		return d.collectEmail
	case StageCollectPhone:
		return d.collectPhone
	case StageCollectCity:
		return d.collectCity
	case StageBooking:
		if len(lead.ProposedSlots) < 2 || lead.ProposedDateLabel == "" {
			return d.bookingEmpty
		}
		return fmt.Sprintf(d.booking, lead.ProposedDateLabel, lead.ProposedSlots[0], lead.ProposedSlots[1])
	case StageConfirmed:
		label := lead.AppointmentLabel
		if label == "" {
			label = lead.ProposedDateLabel
		}
		return fmt.Sprintf(d.confirmed, label)
	}

	// Unknown stages are rejected by Advance before instructions are built;
	// fall back to the greeting directive rather than emitting nothing.
	return d.greeting
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
