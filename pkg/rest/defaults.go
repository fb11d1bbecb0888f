package rest

/**
 * Environment variables
 */

// REST server env names
const RestHostEnvName = "MMS_HOST"
const RestPortEnvName = "MMS_PORT"

/**
 * Parameters
 */

// REST server host
const DefaultRestHost = "localhost"

// REST server port
const DefaultRestPort = "8080"

// argument for statefull
const DefaultStatefull = "-F"

// maximum number of runs kept by a statefull server
const DefaultMaxStoredRuns = 100

// maximum number of units accepted in one request
const DefaultMaxUnits = 1_000_000
