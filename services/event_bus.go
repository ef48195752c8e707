package services

type eventDeps struct {
	rt *RealtimeHub
}

var _events eventDeps

func InitEventDeps(rt *RealtimeHub) {
	_events = eventDeps{rt: rt}
}

// EmitMealEvent pushes a meal lifecycle event ("meal.saved", "meal.deleted")
// to the owner's websockets. Safe to call anywhere, before init included.
func EmitMealEvent(userID uint, kind string, mealID uint, name string) {
	if _events.rt == nil {
		return
	}
	_events.rt.Broadcast(userID, map[string]any{
		"kind":   kind,
		"mealId": mealID,
		"name":   name,
	})
}
