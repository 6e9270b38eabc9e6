package server

import "github.com/blasherlabs/oshack/internal/oshack"

// Event types published on the broker.
const (
	EventObjectiveCompleted  = "objective_completed"
	EventMissionAccomplished = "mission_accomplished"
	EventGameCompleted       = "game_completed"
	EventTestsCompleted      = "tests_completed"
	EventOwnerMessage        = "owner_message"
	EventSessionUpdated      = "session_updated"
	EventSessionReset        = "session_reset"
	EventSessionDeleted      = "session_deleted"
)

// publishTransitions turns objective transitions into user-visible
// notifications. Completing the whole chain emits a second, non-expiring
// notification carrying the success code.
func publishTransitions(broker *Broker, sessionID string, trs []oshack.Transition) {
	for _, tr := range trs {
		if tr.AlreadyDone {
			continue
		}
		n := oshack.NewNotification(oshack.NotifySuccess,
			"Objective complete!", tr.Objective.Title, 5000)
		broker.Publish(sessionID, Event{
			Type:         EventObjectiveCompleted,
			ObjectiveID:  tr.Objective.ID,
			Notification: &n,
		})

		if tr.MissionComplete {
			done := oshack.NewNotification(oshack.NotifySuccess,
				"MISSION ACCOMPLISHED!", "Success code: "+tr.SuccessCode, 0)
			broker.Publish(sessionID, Event{
				Type:         EventMissionAccomplished,
				SuccessCode:  tr.SuccessCode,
				Notification: &done,
			})
		}
	}
}

// publishPsychoTransition announces a scored game and, when the battery is
// finished, the final code.
func publishPsychoTransition(broker *Broker, sessionID string, tr oshack.PsychoTransition) {
	n := oshack.NewNotification(oshack.NotifySuccess,
		"Game finished!", tr.Game.Name, 3000)
	broker.Publish(sessionID, Event{
		Type:         EventGameCompleted,
		GameID:       tr.Game.ID,
		Notification: &n,
	})

	if tr.TestsComplete {
		done := oshack.NewNotification(oshack.NotifySuccess,
			"Tests finished!", "Your code: "+tr.SuccessCode, 10000)
		broker.Publish(sessionID, Event{
			Type:         EventTestsCompleted,
			SuccessCode:  tr.SuccessCode,
			Notification: &done,
		})
	}
}
