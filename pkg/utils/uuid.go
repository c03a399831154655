package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const eventIDLength = 12

// GenerateEventID gera ids curtos no formato evt_XXXXXXXXXXXX para eventos de saída
func GenerateEventID() (string, error) {
	id, err := gonanoid.Generate(characters, eventIDLength)
	if err != nil {
		return "", err
	}
	return "evt_" + id, nil
}
