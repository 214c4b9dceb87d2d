package domain

type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	return s == StatusUpcoming || s == StatusCompleted || s == StatusCancelled
}

type PlayerStatus string

const (
	PlayerRegistered PlayerStatus = "registered"
	PlayerWaitlist   PlayerStatus = "waitlist"
	PlayerCancelled  PlayerStatus = "cancelled"
)

func (s PlayerStatus) Valid() bool {
	return s == PlayerRegistered || s == PlayerWaitlist || s == PlayerCancelled
}
