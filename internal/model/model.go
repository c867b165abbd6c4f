package model

import "time"

// Animal is the fixed set of animals a feeding can be logged for.
type Animal string

const (
	AnimalCat     Animal = "cat"
	AnimalDog     Animal = "dog"
	AnimalHamster Animal = "hamster"
)

// Animals lists the valid animals in selector order.
func Animals() []Animal {
	return []Animal{AnimalCat, AnimalDog, AnimalHamster}
}

func (a Animal) Valid() bool {
	switch a {
	case AnimalCat, AnimalDog, AnimalHamster:
		return true
	}
	return false
}

// MaxWeightGrams caps a single feeding. Anything above it is a data-entry
// mistake, not a meal.
const MaxWeightGrams = 10000

// Record is a persisted feeding event. IDs are assigned by the records
// service, never by the client.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"` // grams
	Animal    Animal    `json:"animal"`
}

// RecordPayload is the write shape for create and update calls.
type RecordPayload struct {
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
	Animal    Animal    `json:"animal"`
}
