package security

// In-memory client registry (replace with DB/config later)
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.process"}
	Enabled bool
}

var Clients = map[string]Client{
	"simulated-client": {ID: "simulated-client", Secret: "simulated-client-secret", Perms: []string{"orders.process"}, Enabled: true},
	"svc-checkout":     {ID: "svc-checkout", Secret: "checkout-secret", Perms: []string{"orders.process"}, Enabled: true},
	"svc-analytics":    {ID: "svc-analytics", Secret: "ana-secret", Perms: []string{}, Enabled: true},
}
