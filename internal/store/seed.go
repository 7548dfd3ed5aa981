package store

// Demo fixtures loaded into an empty store at startup.

var SeedEmployees = []Employee{
	{ID: "2345", Name: "John Doe", Department: "Engineering", Status: "active"},
	{ID: "5678", Name: "Sarah Johnson", Department: "Marketing", Status: "active"},
	{ID: "9012", Name: "Mike Chen", Department: "Sales", Status: "active"},
	{ID: "3456", Name: "Emily Rodriguez", Department: "HR", Status: "active"},
	{ID: "7890", Name: "David Wilson", Department: "Finance", Status: "active"},
	{ID: "1234", Name: "Lisa Brown", Department: "Operations", Status: "active"},
	{ID: "4567", Name: "Alex Kim", Department: "Engineering", Status: "active"},
	{ID: "8901", Name: "Maria Garcia", Department: "Marketing", Status: "active"},
	{ID: "2468", Name: "Tom Anderson", Department: "Sales", Status: "active"},
	{ID: "1357", Name: "Jennifer Lee", Department: "Finance", Status: "active"},
}

var SeedCustomers = []Customer{
	{ID: "CUST-001", Email: "john.doe@acmecorp.com", Name: "John Doe", Company: "Acme Corp", Tier: "Gold", Status: "active"},
	{ID: "CUST-002", Email: "sarah.johnson@techcorp.com", Name: "Sarah Johnson", Company: "TechCorp", Tier: "Bronze", Status: "active"},
	{ID: "CUST-003", Email: "mike.chen@startup.io", Name: "Mike Chen", Company: "Startup.io", Tier: "Silver", Status: "prospect"},
	{ID: "CUST-004", Email: "emily.rodriguez@enterprise.com", Name: "Emily Rodriguez", Company: "Enterprise Corp", Tier: "Gold", Status: "active"},
	{ID: "CUST-005", Email: "bob.wilson@techcorp.com", Name: "Bob Wilson", Company: "TechCorp", Tier: "Bronze", Status: "inactive"},
	{ID: "CUST-006", Email: "alice.smith@bigcorp.com", Name: "Alice Smith", Company: "BigCorp", Tier: "Platinum", Status: "active"},
	{ID: "CUST-007", Email: "charlie.brown@smallbiz.com", Name: "Charlie Brown", Company: "SmallBiz", Tier: "Bronze", Status: "active"},
	{ID: "CUST-008", Email: "diana.prince@wonder.com", Name: "Diana Prince", Company: "Wonder Corp", Tier: "Gold", Status: "active"},
	{ID: "CUST-009", Email: "bruce.wayne@wayne.com", Name: "Bruce Wayne", Company: "Wayne Enterprises", Tier: "Platinum", Status: "active"},
	{ID: "CUST-010", Email: "clark.kent@daily.com", Name: "Clark Kent", Company: "Daily Planet", Tier: "Silver", Status: "active"},
}

var SeedAccounts = []Account{
	{ID: "12345", Type: "investment", Owner: "John Doe", Balance: 125000, Currency: "USD"},
	{ID: "67890", Type: "checking", Owner: "Sarah Johnson", Balance: 8750, Currency: "USD"},
	{ID: "54321", Type: "investment", Owner: "Mike Chen", Balance: 85000, Currency: "USD"},
	{ID: "98765", Type: "savings", Owner: "Emily Rodriguez", Balance: 25000, Currency: "USD"},
	{ID: "11111", Type: "retirement", Owner: "David Wilson", Balance: 200000, Currency: "USD"},
	{ID: "22222", Type: "checking", Owner: "Lisa Brown", Balance: 15000, Currency: "USD"},
	{ID: "33333", Type: "investment", Owner: "Alex Kim", Balance: 75000, Currency: "USD"},
	{ID: "44444", Type: "savings", Owner: "Maria Garcia", Balance: 30000, Currency: "USD"},
	{ID: "55555", Type: "investment", Owner: "Tom Anderson", Balance: 100000, Currency: "USD"},
	{ID: "66666", Type: "retirement", Owner: "Jennifer Lee", Balance: 180000, Currency: "USD"},
}
