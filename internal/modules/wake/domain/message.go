package domain

import "fmt"

// WakeMessage is the sentence spoken when an alarm rings.
func WakeMessage(name, hm, label string) string {
	return fmt.Sprintf("Hello %s. It is %s. Time to wake up and start your session for %s.", name, hm, label)
}

// SpeechPrompt is the text sent to the speech model.
func SpeechPrompt(message string) string {
	return "Say clearly and with authority: " + message
}
