package domain

// DevelopmentCollections is the full set of development collections the
// clear-data script may wipe. Base names only, without the _prod or _test
// environment suffixes.
var DevelopmentCollections = []string{
	// core
	"users",
	"user_stats",
	"user_badges",

	// challenge system
	"challenges",
	"challenge_submissions",
	"leaderboards",

	// sessions
	"dance_sessions",
	"session_likes",

	// AI and analysis
	"dance_breakdowns",
	"pose_analysis",

	// feed
	"feed_items",

	// background jobs
	"background_jobs",
	"job_queue",

	// rate limiting
	"rate_limits",
	"rate_limit_violations",
}

// VideoCollections holds only the video-derived data: session uploads,
// challenge video submissions and their leaderboards, analysis output, and
// feed posts. Clearing these leaves user accounts, challenge definitions,
// and the background job queues intact.
var VideoCollections = []string{
	// session system (video uploads)
	"dance_sessions",
	"session_likes",

	// challenge system (video submissions)
	"challenge_submissions",
	"leaderboards",

	// AI and analysis (video analysis)
	"dance_breakdowns",
	"pose_analysis",

	// feed (video posts)
	"feed_items",
}
