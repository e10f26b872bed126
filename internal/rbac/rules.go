package rbac

// Default policy for the portal's roles. The engine trusts the role
// handed to it and only enforces these operation-level gates; managing
// the policy itself is an external concern.
var RolePermissions = map[string][]string{
	"student": {
		"paper:view",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
		"result:view-own",
	},
	"faculty": {
		"paper:create",
		"paper:view",
		"result:view-all",
	},
	"scrutinizer": {
		"paper:view",
		"paper:review",
	},
	"hod": {
		"*", // everything
	},
}
