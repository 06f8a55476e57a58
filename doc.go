// Package taxfolio computes realized capital gains for a stream of
// asset trades using First-In-First-Out tax-lot matching.
//
// Each sale is satisfied by consuming the oldest still-open purchase
// lots of the same asset, producing an auditable breakdown of which
// purchases funded which sale and at what gain or loss. All quantities
// and amounts use exact decimal arithmetic; binary floating point never
// touches a financial value.
package taxfolio
