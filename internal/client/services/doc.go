// Package services translates between the key-value store and the domain
// values the state manager works with: the credential mapping, the session
// and the completion set.
//
// Store layout:
//
//	currentUser              plain username, absent when logged out
//	users                    JSON object, username -> password record
//	completedCourses         JSON array of course ids (global scope)
//	completedCourses:<user>  JSON array of course ids (user scope)
//
// Services hold no state of their own; every call reads or writes the store.
package services
