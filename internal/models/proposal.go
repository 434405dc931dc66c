package models

// TaskProposal is a candidate task produced by the generation adapter. It is
// not persisted until accepted into a board, at which point it goes through
// normal task creation with status forced to todo.
type TaskProposal struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Labels      []string `json:"labels"`
}

// Normalize clamps a proposal to the permitted value sets: a missing or
// unknown priority becomes medium, unknown labels are dropped.
func (p *TaskProposal) Normalize() {
	if !ValidPriority(p.Priority) {
		p.Priority = PriorityMedium
	}
	var labels []string
	for _, l := range p.Labels {
		if ValidLabel(l) {
			labels = append(labels, l)
		}
	}
	p.Labels = labels
}
