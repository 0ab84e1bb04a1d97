package domain

import "time"

// Task pertenece a un único usuario; toda lectura o mutación
// debe comparar UserID contra la identidad autenticada.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsDone      bool      `json:"isDone"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"-"`
}
