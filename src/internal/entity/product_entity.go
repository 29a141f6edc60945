package entity

type Product struct {
	ID     string  `db:"id"`
	Title  string  `db:"title"`
	Rating float64 `db:"rating"`
}

type User struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
}
