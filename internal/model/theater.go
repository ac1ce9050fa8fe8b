package model

import "time"

// Theater represents a cinema venue.  A theater contains one or more
// rooms (auditoriums) where showtimes are scheduled.  This struct
// corresponds to a row in the `theaters` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique theater name.
//  City      – city where the theater is located.
//  Address   – street address.
//  CreatedAt – timestamp when the theater was created.
//  UpdatedAt – timestamp of last update.
type Theater struct {
	ID        uint64    // theaters.id
	Name      string    // theaters.name
	City      string    // theaters.city
	Address   string    // theaters.address
	CreatedAt time.Time // theaters.created_at
	UpdatedAt time.Time // theaters.updated_at
}

// Room represents a single auditorium within a theater.  Its seating
// layout drives seat-map generation: RowCount rows labelled A, B, C…
// with SeatsPerRow seats each, and the VIP/couple row sets stored as
// comma-separated row letters.
//
// Fields:
//  ID          – primary key identifier.
//  TheaterID   – theater to which this room belongs.
//  Name        – room name, unique per theater.
//  RowCount    – number of seating rows.
//  SeatsPerRow – seats generated per row.
//  VIPRows     – comma-separated VIP row letters (e.g. "F,G,H").
//  CoupleRows  – comma-separated couple row letters (e.g. "I,J").
//  IsActive    – whether the room is in service.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    // rooms.id
	TheaterID   uint64    // rooms.theater_id
	Name        string    // rooms.name
	RowCount    uint32    // rooms.row_count
	SeatsPerRow uint32    // rooms.seats_per_row
	VIPRows     string    // rooms.vip_rows
	CoupleRows  string    // rooms.couple_rows
	IsActive    bool      // rooms.is_active
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
