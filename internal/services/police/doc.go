// Package police implements the "contact police" flow: fetch the current
// position, then either call the police number or text it a maps link.
package police
