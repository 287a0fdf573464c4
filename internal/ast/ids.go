package ast

type (
	// главные сущности
	ModuleID     uint32
	DeclID       uint32
	TypeID       uint32
	ExprID       uint32
	StmtID       uint32
	DesignatorID uint32
	// индекс в арене payload'а конкретного варианта
	PayloadID uint32
)

const (
	NoModuleID     ModuleID     = 0
	NoDeclID       DeclID       = 0
	NoTypeID       TypeID       = 0
	NoExprID       ExprID       = 0
	NoStmtID       StmtID       = 0
	NoDesignatorID DesignatorID = 0
	NoPayloadID    PayloadID    = 0
)

func (id ModuleID) IsValid() bool     { return id != NoModuleID }
func (id DeclID) IsValid() bool       { return id != NoDeclID }
func (id TypeID) IsValid() bool       { return id != NoTypeID }
func (id ExprID) IsValid() bool       { return id != NoExprID }
func (id StmtID) IsValid() bool       { return id != NoStmtID }
func (id DesignatorID) IsValid() bool { return id != NoDesignatorID }
func (id PayloadID) IsValid() bool    { return id != NoPayloadID }
