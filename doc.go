// Package cgt computes UK capital gains tax from a transaction ledger.
//
// Processing is a fixed pipeline per asset: the HMRC matching passes first
// (same-day, then 30-day bed and breakfast), then Section 104 pooling of
// whatever survives, at weighted-average cost. Every disposal from the pool
// realizes a gain or loss attributed to a tax year; per-year totals and the
// tax due come from a configured rate table.
//
// All quantities and amounts are exact decimals. Monetary amounts carry
// their currency; the tax math only ever sees the reporting currency (GBP).
package cgt
