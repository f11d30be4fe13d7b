// Package classify decides which destination folder a file belongs to.
//
// A Resolver applies four strategies in a fixed order and stops at the first
// that yields a folder: an embedded tag in the file, the first matching
// custom rule, the upper-cased extension ("MD_Files"), and finally the
// catch-all folder. The order is part of the contract; changing it changes
// where existing content lands.
package classify
