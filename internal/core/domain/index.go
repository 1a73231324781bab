package domain

// IndexKey is one field of an index key, with 1 for ascending and -1 for
// descending order.
type IndexKey struct {
	Field string
	Order int
}

// Index describes one index to ensure on a collection.
type Index struct {
	Collection string
	// Name is optional; the driver derives one from the keys when empty.
	Name   string
	Keys   []IndexKey
	Unique bool
	// Sparse indexes skip documents that lack the indexed field, which lets
	// a unique constraint coexist with legacy documents missing it.
	Sparse bool
}

// IndexInfo is a listing entry for an existing index.
type IndexInfo struct {
	Name string
	Keys []IndexKey
}

// UserIndexes returns the indexes required on a users collection. The unique
// sparse index on profile.username is what actually enforces the uniqueness
// the username allocator probes for.
func UserIndexes(collection string) []Index {
	return []Index{
		{Collection: collection, Keys: []IndexKey{{Field: "profile.username", Order: 1}}, Unique: true, Sparse: true},
		{Collection: collection, Keys: []IndexKey{{Field: "auth.email", Order: 1}}, Unique: true, Sparse: true},
		{Collection: collection, Keys: []IndexKey{{Field: "auth.providerId", Order: 1}}, Sparse: true},
	}
}

// ChallengeIndexes returns the indexes for the challenge system collections.
func ChallengeIndexes() []Index {
	return []Index{
		{Collection: "challenges", Name: "active_challenges", Keys: []IndexKey{
			{Field: "isActive", Order: 1}, {Field: "startTime", Order: 1}, {Field: "endTime", Order: 1},
		}},
		{Collection: "challenges", Name: "challenge_type_difficulty", Keys: []IndexKey{
			{Field: "type", Order: 1}, {Field: "difficulty", Order: 1},
		}},
		{Collection: "challenges", Name: "admin_challenges", Keys: []IndexKey{
			{Field: "createdBy", Order: 1}, {Field: "createdAt", Order: -1},
		}},
		{Collection: "challenges", Name: "date_range", Keys: []IndexKey{
			{Field: "startTime", Order: 1}, {Field: "endTime", Order: 1},
		}},
		{Collection: "challenges", Name: "created_at_desc", Keys: []IndexKey{
			{Field: "createdAt", Order: -1},
		}},

		{Collection: "challenge_submissions", Name: "challenge_user_submission", Unique: true, Keys: []IndexKey{
			{Field: "challengeId", Order: 1}, {Field: "userId", Order: 1},
		}},
		{Collection: "challenge_submissions", Name: "submission_date", Keys: []IndexKey{
			{Field: "submittedAt", Order: -1},
		}},
		{Collection: "challenge_submissions", Name: "leaderboard_score", Keys: []IndexKey{
			{Field: "challengeId", Order: 1}, {Field: "totalScore", Order: -1},
		}},
		{Collection: "challenge_submissions", Name: "user_submissions", Keys: []IndexKey{
			{Field: "userId", Order: 1}, {Field: "submittedAt", Order: -1},
		}},

		{Collection: "user_badges", Name: "user_badges", Keys: []IndexKey{
			{Field: "userId", Order: 1}, {Field: "earnedAt", Order: -1},
		}},
		{Collection: "user_badges", Name: "badge_user", Unique: true, Keys: []IndexKey{
			{Field: "badgeName", Order: 1}, {Field: "userId", Order: 1},
		}},

		{Collection: "leaderboards", Name: "challenge_leaderboard", Keys: []IndexKey{
			{Field: "challengeId", Order: 1}, {Field: "rank", Order: 1},
		}},
		{Collection: "leaderboards", Name: "global_leaderboard", Keys: []IndexKey{
			{Field: "period", Order: 1}, {Field: "rank", Order: 1},
		}},
	}
}

// ChallengeCollections lists the collections ChallengeIndexes covers, in the
// order the verify pass reports them.
func ChallengeCollections() []string {
	return []string{"challenges", "challenge_submissions", "user_badges", "leaderboards"}
}
