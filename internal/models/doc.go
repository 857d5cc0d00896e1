// Package models defines the records kept by the Splitledger store.
//
// # Records
//
//   - User: a person who can belong to groups and pay or share expenses
//   - Group: a named set of member users who share expenses
//   - Expense: one payment by a member on behalf of some participants
//   - Settlement: a repayment between two members, stored as an Expense
//
// Relationships are held as ID strings rather than pointers. Balances are not
// records: they are recomputed from a group's expenses on every request by
// package ledger.
package models
