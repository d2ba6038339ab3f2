package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveClientsFirstSeenNameWins(t *testing.T) {
	apps := []Appointment{
		{ID: "1", ClientName: "Ana", Phone: "555", Date: "2024-01-01", Time: "10:00"},
		{ID: "2", ClientName: "Ana2", Phone: "555", Date: "2024-02-01", Time: "11:00"},
		{ID: "3", ClientName: "Bea", Phone: "777", Date: "2024-01-15", Time: "12:00"},
	}

	clients := DeriveClients(apps)
	require.Len(t, clients, 2)

	byPhone := make(map[string]Client)
	for _, c := range clients {
		byPhone[c.Phone] = c
	}
	assert.Equal(t, "Ana", byPhone["555"].Name, "first-seen name wins for a recurring phone")
	assert.Equal(t, "Bea", byPhone["777"].Name)
}

func TestDeriveClientsSortsByName(t *testing.T) {
	apps := []Appointment{
		{ID: "1", ClientName: "Zoe", Phone: "111", Date: "2024-01-01", Time: "10:00"},
		{ID: "2", ClientName: "Ana", Phone: "222", Date: "2024-01-02", Time: "10:00"},
	}

	clients := DeriveClients(apps)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, "Zoe", clients[1].Name)
}

func TestDeriveClientsSkipsIncompleteRecords(t *testing.T) {
	apps := []Appointment{
		{ID: "1", ClientName: "", Phone: "555", Date: "2024-01-01", Time: "10:00"},
		{ID: "2", ClientName: "Ana", Phone: "", Date: "2024-01-01", Time: "10:00"},
	}
	assert.Empty(t, DeriveClients(apps))
}
