package test

import (
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/gymrat/internal/domain/model"
)

const nameLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ "

var randomPlans = []model.Plan{model.PlanMonthly, model.PlanQuarterly, model.PlanYearly, "Weekend"}

// RandomName returns a non-blank name of 1 to maxLen characters, spaces included.
func RandomName(maxLen int) string {
	if maxLen < 1 {
		maxLen = 1
	}
	for {
		buf := make([]byte, 1+rand.IntN(maxLen))
		for i := range buf {
			buf[i] = nameLetters[rand.IntN(len(nameLetters))]
		}
		if name := string(buf); strings.TrimSpace(name) != "" {
			return name
		}
	}
}

// RandomPhone returns a ten digit phone number.
func RandomPhone() string {
	var b strings.Builder
	b.WriteByte(byte('6' + rand.IntN(4)))
	for range 9 {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// RandomNewMember builds a valid member without dates, so the store assigns
// the start date.
func RandomNewMember() model.NewMember {
	return model.NewMember{
		Name:  RandomName(24),
		Phone: RandomPhone(),
		Plan:  randomPlans[rand.IntN(len(randomPlans))],
	}
}
