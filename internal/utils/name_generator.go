package utils

import "math/rand"

var nameAdjectives = []string{
	"Happy", "Quiet", "Brave", "Clever", "Gentle", "Lucky", "Sunny", "Swift",
	"Curious", "Cheerful", "Calm", "Bold", "Witty", "Kind", "Mellow", "Nimble",
	"Proud", "Cozy", "Bright", "Jolly",
}

var nameNouns = []string{
	"Panda", "Otter", "Falcon", "Tiger", "Rabbit", "Koala", "Fox", "Penguin",
	"Dolphin", "Squirrel", "Hedgehog", "Owl", "Badger", "Lynx", "Sparrow", "Whale",
	"Turtle", "Wolf", "Kitten", "Puffin",
}

// GenerateName returns a random "Adjective Noun" display name. Names may repeat.
func GenerateName() string {
	return nameAdjectives[rand.Intn(len(nameAdjectives))] + " " + nameNouns[rand.Intn(len(nameNouns))]
}
