package scaffold

import "github.com/kitforge/create-express/internal/templates"

const sqliteConnector = `import "dotenv/config";
import { drizzle } from "drizzle-orm/libsql";

export const db = drizzle(process.env.DATABASE_URL!);
`

const neonConnector = `import "dotenv/config";
import { neon } from "@neondatabase/serverless";
import { drizzle } from "drizzle-orm/neon-http";

const sql = neon(process.env.DATABASE_URL!);

export const db = drizzle({ client: sql });
`

// connectorFor returns the complete DB bootstrap module for a database.
// The variants differ in imports and client construction, so the file is
// replaced whole rather than patched.
func connectorFor(db templates.Database) string {
	if db == templates.Postgres {
		return neonConnector
	}
	return sqliteConnector
}
