// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import "testing"

func TestStripFiller(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"wh-question frame",
			"What can you tell me about the effects of caffeine on sleep quality since 2019?",
			"the effects of caffeine on sleep quality since 2019?",
		},
		{
			"imperative frame",
			"Tell me about metformin and weight loss",
			"metformin and weight loss",
		},
		{
			"modal-polite frame",
			"Could you give me a summary on statin safety in the elderly",
			"statin safety in the elderly",
		},
		{
			"curiosity frame",
			"I'm curious about gut microbiome diversity",
			"gut microbiome diversity",
		},
		{
			"no frame unchanged",
			"metformin weight loss type 2 diabetes",
			"metformin weight loss type 2 diabetes",
		},
		{
			"strip ends at first topic preposition",
			"What is known about vitamin D deficiency",
			"vitamin D deficiency",
		},
		{
			"remainder too short rejected",
			"What about flu?",
			"What about flu?",
		},
		{
			"leading quote protected",
			`"what about"`,
			`"what about"`,
		},
		{
			"no cascading into second frame",
			"Tell me about what causes migraines",
			"Tell me about what causes migraines",
		},
		{
			"case-insensitive trigger",
			"TELL ME ABOUT aspirin and stroke prevention",
			"aspirin and stroke prevention",
		},
		{
			"whitespace trimmed",
			"   intermittent fasting outcomes  ",
			"intermittent fasting outcomes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFiller(tt.in); got != tt.want {
				t.Errorf("StripFiller(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripFillerIdempotent(t *testing.T) {
	inputs := []string{
		"What can you tell me about the effects of caffeine on sleep quality since 2019?",
		"Tell me about metformin and weight loss",
		"gut microbiome diversity",
	}
	for _, in := range inputs {
		once := StripFiller(in)
		if twice := StripFiller(once); twice != once {
			t.Errorf("StripFiller not idempotent on %q: %q != %q", in, twice, once)
		}
	}
}
