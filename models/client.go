package models

import "sort"

// Client is derived, never stored: the set of distinct phone numbers seen
// across all appointments. If the same phone recurs with a different name,
// the first-seen name wins. No normalization is applied to either field.
type Client struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DeriveClients builds the client list from the full appointment set,
// sorted by name for display.
func DeriveClients(appointments []Appointment) []Client {
	seen := make(map[string]Client)
	order := make([]string, 0)
	for _, app := range appointments {
		if app.ClientName == "" || app.Phone == "" {
			continue
		}
		if _, ok := seen[app.Phone]; ok {
			continue
		}
		seen[app.Phone] = Client{Name: app.ClientName, Phone: app.Phone}
		order = append(order, app.Phone)
	}

	clients := make([]Client, 0, len(order))
	for _, phone := range order {
		clients = append(clients, seen[phone])
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].Name < clients[j].Name
	})
	return clients
}
