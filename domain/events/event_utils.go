package events

import "reflect"

// ExtractSessionID pulls the SessionID field out of an arbitrary event, so
// dispatchers can route events they have no explicit case for.
func ExtractSessionID(event Event) string {
	val := reflect.ValueOf(event)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		sessionID := val.FieldByName("SessionID")

		if sessionID.IsValid() && sessionID.Kind() == reflect.String {
			return sessionID.String()
		}
	}

	return ""
}
