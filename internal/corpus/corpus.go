// Package corpus generates deterministic synthetic task-tracker records and
// renders them in the payload formats whose token costs the simulator models.
package corpus

import (
	"fmt"
	"math/rand"
	"time"
)

// FieldsFull lists the record fields in payload order.
var FieldsFull = []string{"id", "name", "status", "assignee", "description", "priority", "created", "updated"}

// FieldsAlias lists the 1-char abbreviations, parallel to FieldsFull.
var FieldsAlias = []string{"i", "n", "s", "a", "d", "p", "c", "u"}

// Scales are the standard corpus sizes used by the measurement pass.
var Scales = []int{5, 20, 100, 500}

// DefaultSeed keeps generated corpora reproducible across runs.
const DefaultSeed = 42

// Record is one synthetic task.
type Record struct {
	ID          string
	Name        string
	Status      string
	Assignee    string
	Description string
	Priority    string
	Created     time.Time
	Updated     time.Time
}

var taskPrefixes = []string{
	"Implement", "Fix", "Refactor", "Add", "Update", "Remove", "Migrate",
	"Optimize", "Configure", "Document", "Test", "Review", "Deploy",
	"Investigate", "Design", "Integrate", "Extract", "Replace", "Validate",
	"Monitor", "Automate", "Upgrade", "Restructure", "Normalize", "Cache",
}

var taskSubjects = []string{
	"user authentication flow", "database connection pooling",
	"API rate limiting middleware", "search indexing pipeline",
	"notification service integration", "payment webhook handler",
	"session management logic", "file upload validation",
	"error logging infrastructure", "cache invalidation strategy",
	"role-based access control", "GraphQL schema resolver",
	"CI/CD pipeline configuration", "load balancer health checks",
	"data migration scripts", "email template rendering",
	"feature flag evaluation", "metrics dashboard endpoint",
	"WebSocket reconnection logic", "batch processing queue",
	"OAuth2 token refresh flow", "image resize worker",
	"audit trail logging", "timezone handling utilities",
	"CSV export functionality", "retry policy for external calls",
	"schema validation middleware", "background job scheduler",
	"API versioning strategy", "request deduplication layer",
	"connection timeout configuration", "memory leak in worker pool",
	"pagination cursor encoding", "rate limit header propagation",
	"CORS preflight handling", "TLS certificate rotation",
	"dependency version bumps", "stale cache purge mechanism",
	"input sanitization filters", "dead letter queue processing",
}

var statuses = []string{"open", "in-progress", "review", "done", "blocked"}

var priorities = []string{"critical", "high", "medium", "low"}

var assignees = []string{
	"alice", "bob", "carol", "dave", "eve", "frank", "grace",
	"heidi", "ivan", "judy", "karl", "liam", "mona", "nick",
	"olivia", "pat", "quinn", "rosa", "sam", "tina",
}

var descTemplates = []string{
	"Need to %[1]s the %[2]s to handle %[3]s. Current implementation %[4]s.",
	"The %[2]s has issues when %[3]s. We should %[1]s it to %[5]s.",
	"%[2]s needs attention: %[3]s causes %[4]s. Plan: %[1]s and %[5]s.",
	"As discussed in standup, %[1]s %[2]s. %[3]s is blocking %[5]s.",
	"Follow-up from incident: %[2]s failed during %[3]s. Must %[1]s to prevent %[4]s.",
}

var descVerbs = []string{"refactor", "rewrite", "patch", "extend", "simplify", "harden", "decouple", "wrap"}

var descComponents = []string{
	"the auth module", "our caching layer", "the API gateway",
	"the worker pool", "the event bus", "the ORM layer",
	"the config loader", "the middleware stack",
}

var descScenarios = []string{
	"high traffic spikes", "concurrent writes", "large payloads",
	"network partitions", "cold starts", "schema changes",
	"token expiration", "failover events",
}

var descProblems = []string{
	"silently drops requests", "leaks memory over time",
	"returns stale data", "times out under load",
	"fails without retry", "corrupts state on restart",
}

var descGoals = []string{
	"improve reliability", "reduce latency by 40%",
	"support horizontal scaling", "meet SLA requirements",
	"unblock the frontend team", "pass the security audit",
}

var (
	dateFloor   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dateCeiling = time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)
)

// Generate produces n records from a seeded RNG. The same (n, seed) pair
// always yields the same records.
func Generate(n int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))

	records := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		created := randomDate(rng)
		updated := created.AddDate(0, 0, rng.Intn(31))
		if updated.After(dateCeiling) {
			updated = dateCeiling
		}
		records = append(records, Record{
			ID:          fmt.Sprintf("TASK-%04d", i),
			Name:        pick(rng, taskPrefixes) + " " + pick(rng, taskSubjects),
			Status:      pick(rng, statuses),
			Assignee:    pick(rng, assignees),
			Description: makeDescription(rng),
			Priority:    pick(rng, priorities),
			Created:     created,
			Updated:     updated,
		})
	}
	return records
}

func makeDescription(rng *rand.Rand) string {
	return fmt.Sprintf(pick(rng, descTemplates),
		pick(rng, descVerbs),
		pick(rng, descComponents),
		pick(rng, descScenarios),
		pick(rng, descProblems),
		pick(rng, descGoals),
	)
}

func randomDate(rng *rand.Rand) time.Time {
	span := int(dateCeiling.Sub(dateFloor).Hours() / 24)
	return dateFloor.AddDate(0, 0, rng.Intn(span+1))
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}
