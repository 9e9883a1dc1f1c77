package models

// All lists the tables owned by the service, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Question{},
		&Vote{},
		&Attempt{},
	}
}
