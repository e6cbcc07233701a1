package realtime

import "fmt"

const CoachesTopic = "coaches"

func EventsTopic(coachID string) string {
	return fmt.Sprintf("coaches/%s/events", coachID)
}

func EventTopic(coachID, eventID string) string {
	return fmt.Sprintf("coaches/%s/events/%s", coachID, eventID)
}

func SessionTopic(userID string) string {
	return fmt.Sprintf("sessions/%s", userID)
}
