package cli

import (
	"fmt"

	"homescout/client-app/pkg/model"
)

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		fmt.Println("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	fmt.Println("Command syntax: <scope> <operation> [arguments]")
	fmt.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				fmt.Printf("Commands for %s:\n\n", scope)
				found = true
			}
			fmt.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		fmt.Printf("No commands found for scope '%s'\n", scope)
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Printf("Command: %s %s\n", scope, operation)
			fmt.Printf("Description: %s\n", cmd.LongDesc)
			fmt.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Options) > 0 {
				fmt.Println("Options:")
				for _, opt := range cmd.Options {
					fmt.Printf("  %s\n", opt)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Println("Examples:")
				for _, ex := range cmd.Examples {
					fmt.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Printf("No help found for %s %s\n", scope, operation)
}

// commandHelps holds the help information for all commands, grouped by scope.
var commandHelps = []model.CommandHelp{
	{
		Scope:     "property",
		Operation: "list",
		ShortDesc: "List all properties",
		LongDesc:  "Displays all listings, bundled ones first followed by listings fetched from the backend.",
		Syntax:    "property list",
		Examples:  []string{"property list"},
	},
	{
		Scope:     "property",
		Operation: "filter",
		ShortDesc: "Filter properties",
		LongDesc:  "Displays the listings matching every given criterion. Omitted criteria match everything.",
		Syntax:    "property filter [<key>=<value>]...",
		Arguments: []string{
			"type: buy, rent or all",
			"proptype: comma-separated list, e.g. proptype=apartment,villa",
			"minprice / maxprice: inclusive price bounds",
			"location: substring matched against city and address",
			"pets / pool / parking: true to require the amenity",
			"availability: available, sold, rented or all",
		},
		Examples: []string{"property filter type=rent maxprice=30000", "property filter location=pune pets=true"},
	},
	{
		Scope:     "property",
		Operation: "show",
		ShortDesc: "Show property details",
		LongDesc:  "Displays the full details of a single listing.",
		Syntax:    "property show <id>",
		Arguments: []string{"id: The listing id, e.g. hs-101 or api_662f..."},
		Examples:  []string{"property show hs-101"},
	},
	{
		Scope:     "property",
		Operation: "search",
		ShortDesc: "Search the backend",
		LongDesc:  "Runs a free-text search against the backend and displays the matches.",
		Syntax:    "property search <query>",
		Arguments: []string{"query: The search text"},
		Examples:  []string{"property search \"sea view\""},
	},
	{
		Scope:     "property",
		Operation: "refresh",
		ShortDesc: "Re-fetch remote properties",
		LongDesc:  "Re-fetches the remote listings from the backend and replaces the cached copy.",
		Syntax:    "property refresh",
		Examples:  []string{"property refresh"},
	},
	{
		Scope:     "favorite",
		Operation: "toggle",
		ShortDesc: "Like or unlike a property",
		LongDesc:  "Toggles a listing in your favorites. As a guest the set is stored on this device only; when logged in it is kept on the server.",
		Syntax:    "favorite toggle <id>",
		Arguments: []string{"id: The listing id to toggle"},
		Examples:  []string{"favorite toggle hs-101"},
	},
	{
		Scope:     "favorite",
		Operation: "list",
		ShortDesc: "List favorite properties",
		LongDesc:  "Displays your current favorites.",
		Syntax:    "favorite list",
		Examples:  []string{"favorite list"},
	},
	{
		Scope:     "user",
		Operation: "signup",
		ShortDesc: "Create an account",
		LongDesc:  "Creates a new account and logs you in. Guest favorites are merged into the new account.",
		Syntax:    "user signup <name> <email> <password> [phone]",
		Arguments: []string{"name: Display name", "email: Unique email address", "password: Account password", "phone: (Optional) Phone number"},
		Examples:  []string{"user signup \"Asha Rao\" asha@example.com secret"},
	},
	{
		Scope:     "user",
		Operation: "login",
		ShortDesc: "Log in",
		LongDesc:  "Logs in with email and password. Favorites saved as a guest are merged into the account.",
		Syntax:    "user login <email> <password>",
		Arguments: []string{"email: Account email", "password: Account password"},
		Examples:  []string{"user login asha@example.com secret"},
	},
	{
		Scope:     "user",
		Operation: "logout",
		ShortDesc: "Log out",
		LongDesc:  "Logs out the current user and switches favorites back to the device-local guest set.",
		Syntax:    "user logout",
		Examples:  []string{"user logout"},
	},
	{
		Scope:     "user",
		Operation: "update",
		ShortDesc: "Update profile",
		LongDesc:  "Updates profile fields of the logged-in user.",
		Syntax:    "user update <field>=<value>...",
		Arguments: []string{"field: one of name, email, phone, pic, password"},
		Examples:  []string{"user update phone=+919900112233", "user update name=\"Asha R\""},
	},
	{
		Scope:     "user",
		Operation: "whoami",
		ShortDesc: "Show the current user",
		LongDesc:  "Displays the logged-in user's profile, or notes that you are browsing as a guest.",
		Syntax:    "user whoami",
		Examples:  []string{"user whoami"},
	},
	{
		Scope:     "inquiry",
		Operation: "send",
		ShortDesc: "Send a property inquiry",
		LongDesc:  "Sends a contact request about a listing to the backend. Logged-in users' contact details are filled in automatically.",
		Syntax:    "inquiry send <property-id> <message> [name] [email] [phone]",
		Arguments: []string{
			"property-id: The listing the inquiry is about",
			"message: The inquiry text",
			"name / email / phone: Contact details, required for guests",
		},
		Examples: []string{"inquiry send hs-101 \"Is this still available?\" Ravi ravi@example.com"},
	},
	{
		Scope:     "admin",
		Operation: "login",
		ShortDesc: "Enable admin mode",
		LongDesc:  "Verifies the admin password with the backend and enables the management commands.",
		Syntax:    "admin login <password>",
		Arguments: []string{"password: The admin password"},
		Examples:  []string{"admin login s3cret"},
	},
	{
		Scope:     "admin",
		Operation: "logout",
		ShortDesc: "Disable admin mode",
		LongDesc:  "Disables admin mode and clears the persisted admin flag.",
		Syntax:    "admin logout",
		Examples:  []string{"admin logout"},
	},
	{
		Scope:     "admin",
		Operation: "stats",
		ShortDesc: "Show dashboard statistics",
		LongDesc:  "Displays listing and inquiry counts from the backend.",
		Syntax:    "admin stats",
		Examples:  []string{"admin stats"},
	},
	{
		Scope:     "admin",
		Operation: "add",
		ShortDesc: "Create a listing",
		LongDesc:  "Creates a new listing on the backend. Image paths given with images= are uploaded alongside.",
		Syntax:    "admin add <field>=<value>... [images=<path,...>]",
		Arguments: []string{
			"title, price, type, proptype, city, address, state, zip",
			"bedrooms, bathrooms, size, parking, yearbuilt",
			"pets, featured, availability, description",
			"amenities, features, nearby: comma-separated lists",
			"agentname, agentphone, agentemail",
			"images: comma-separated local file paths to upload",
		},
		Examples: []string{"admin add title=\"2BHK in Kothrud\" price=9500000 type=buy city=Pune bedrooms=2"},
	},
	{
		Scope:     "admin",
		Operation: "update",
		ShortDesc: "Update a listing",
		LongDesc:  "Updates fields of an existing backend listing. Bundled listings cannot be changed.",
		Syntax:    "admin update <id> <field>=<value>...",
		Arguments: []string{"id: The listing id", "field: Same fields as admin add"},
		Examples:  []string{"admin update api_662f price=8900000 availability=sold"},
	},
	{
		Scope:     "admin",
		Operation: "delete",
		ShortDesc: "Delete a listing",
		LongDesc:  "Deletes a backend listing.",
		Syntax:    "admin delete <id>",
		Arguments: []string{"id: The listing id"},
		Examples:  []string{"admin delete api_662f"},
	},
	{
		Scope:     "admin",
		Operation: "inquiries",
		ShortDesc: "List inquiries",
		LongDesc:  "Displays all inquiries received by the backend.",
		Syntax:    "admin inquiries",
		Examples:  []string{"admin inquiries"},
	},
	{
		Scope:     "admin",
		Operation: "inquiry-status",
		ShortDesc: "Update an inquiry's status",
		LongDesc:  "Marks an inquiry as new, contacted or closed.",
		Syntax:    "admin inquiry-status <id> <status>",
		Arguments: []string{"id: The inquiry id", "status: new, contacted or closed"},
		Examples:  []string{"admin inquiry-status 42 contacted"},
	},
	{
		Scope:     "admin",
		Operation: "upload",
		ShortDesc: "Upload an image",
		LongDesc:  "Uploads a single image file and prints the URL the backend serves it under.",
		Syntax:    "admin upload <file-path>",
		Arguments: []string{"file-path: Local path of the image"},
		Examples:  []string{"admin upload ./photos/front.jpg"},
	},
	{
		Scope:     "admin",
		Operation: "health",
		ShortDesc: "Check backend health",
		LongDesc:  "Checks whether the backend is reachable.",
		Syntax:    "admin health",
		Examples:  []string{"admin health"},
	},
}
