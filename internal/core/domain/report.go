package domain

import "math"

// LawyerPerformance summarizes task completion for one firm lawyer.
type LawyerPerformance struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
	Rating         float64 `json:"rating"`
}

// FirmReport is the manager's overview of a firm's lawyers and tasks.
type FirmReport struct {
	TotalLawyers    int                 `json:"total_lawyers"`
	TotalTasks      int                 `json:"total_tasks"`
	CompletedTasks  int                 `json:"completed_tasks"`
	PendingTasks    int                 `json:"pending_tasks"`
	InProgressTasks int                 `json:"in_progress_tasks"`
	CompletionRate  float64             `json:"completion_rate"`
	LawyerStats     []LawyerPerformance `json:"lawyer_stats"`
	Lawyers         []*Identity         `json:"lawyers"`
}

// BuildFirmReport aggregates tasks per lawyer. Rates are percentages rounded
// to one decimal place; a lawyer without tasks has a rate of 0.
func BuildFirmReport(lawyers []*Identity, tasks []*Task) FirmReport {
	r := FirmReport{
		TotalLawyers: len(lawyers),
		TotalTasks:   len(tasks),
		LawyerStats:  make([]LawyerPerformance, 0, len(lawyers)),
		Lawyers:      lawyers,
	}

	perLawyer := make(map[string][2]int, len(lawyers)) // total, completed
	for _, t := range tasks {
		counts := perLawyer[t.AssignedTo]
		counts[0]++
		switch t.Status {
		case TaskCompleted:
			r.CompletedTasks++
			counts[1]++
		case TaskPending:
			r.PendingTasks++
		case TaskInProgress:
			r.InProgressTasks++
		}
		perLawyer[t.AssignedTo] = counts
	}
	r.CompletionRate = percent(r.CompletedTasks, r.TotalTasks)

	for _, l := range lawyers {
		counts := perLawyer[l.ID]
		perf := LawyerPerformance{
			ID:             l.ID,
			Name:           l.FullName,
			Specialization: "General",
			TotalTasks:     counts[0],
			CompletedTasks: counts[1],
			CompletionRate: percent(counts[1], counts[0]),
			Rating:         4.5,
		}
		if l.FirmLawyer != nil {
			if l.FirmLawyer.Specialization != "" {
				perf.Specialization = l.FirmLawyer.Specialization
			}
			if l.FirmLawyer.Rating != 0 {
				perf.Rating = l.FirmLawyer.Rating
			}
		}
		r.LawyerStats = append(r.LawyerStats, perf)
	}
	return r
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
