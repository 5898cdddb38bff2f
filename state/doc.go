// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages accounts and their storage slots.
// It follows the flow as below:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ staging ] -> [ main store batch ]
//	          |
//	   [ object cache ]
//	          |
//	  [ read-only store ]
//
// All mutations are journaled until staged, so a failed operation can be
// rolled back to its checkpoint without touching the main store.
package state
