package internal

// Version is the current release version of sublate
const Version = "0.1.0"
