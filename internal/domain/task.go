package domain

import "time"

// Task tracks progress independently of completion: a task at 100% is not
// completed until someone marks it so.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Progress    int
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
}
